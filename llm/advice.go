// Package llm calls the conversational advice backend. The backend is a
// plain chat-completions endpoint; everything that makes the advice useful
// lives in the prompt built from the reconciled financial state.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"finance-advisor/api/metrics"
	"finance-advisor/api/models"
	"finance-advisor/api/reaction"
)

const completionsURL = "https://api.openai.com/v1/chat/completions"

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

func languageName(lang models.Language) string {
	switch lang {
	case models.LanguageUZ:
		return "Uzbek"
	case models.LanguageRU:
		return "Russian"
	default:
		return "English"
	}
}

// SystemInstruction frames the advisor persona and pins the reply language.
// Remote models drift languages easily, hence the repetition.
func SystemInstruction(profile models.UserProfile, lang models.Language) string {
	name := profile.Name
	if name == "" {
		name = "the user"
	}
	city := profile.City
	if city == "" {
		city = "Uzbekistan"
	}
	langName := languageName(lang)

	return fmt.Sprintf(`You are a brutally honest, strict, and culturally aware financial advisor for %s, a %d-year-old %s person living in %s.

CRITICAL LANGUAGE REQUIREMENT:
- You MUST reply ONLY in %s.
- NEVER switch to another language, even if the user asks in a different language.
- All numbers, calculations, and financial terms must be presented in %s.

Core Principles:
1. Blunt Truth: Do not sugarcoat. If the user buys coffee when broke, roast them nicely.
2. Islamic Finance: Strictly adhere to Sharia. Interest (Riba) is HARAM. Suggest Halal investments (Gold, Sukuk, Trade).
3. Context: The user is %d and %s. Tailor advice (marriage saving vs house buying).
4. Proactive: Suggest budget adjustments. If asked about budget, suggest 50/30/20.

Remember: ALWAYS respond in %s. This is non-negotiable.`,
		name, profile.Age, profile.Status, city,
		langName, langName,
		profile.Age, profile.Status,
		langName)
}

// ContextPrompt condenses the derived summary into the few figures the model
// needs to ground its answer.
func ContextPrompt(summary metrics.Summary, loanCount, lendingCount int) string {
	return fmt.Sprintf(`Financial Context:
- Net Income: %s
- Total Spent: %s
- Net Worth: %s
- Active Loans: %d
- Active Lendings: %d`,
		reaction.FormatAmount(summary.Tax.NetIncomeThisMonth),
		reaction.FormatAmount(summary.TotalMonthExpenses),
		reaction.FormatAmount(summary.NetWorth),
		loanCount, lendingCount)
}

// GetFinancialAdvice answers one user question against the current snapshot.
func GetFinancialAdvice(ctx context.Context, profile models.UserProfile, summary metrics.Summary, loanCount, lendingCount int, userQuery string, lang models.Language) (string, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	reqBody := chatRequest{
		Model:       "gpt-3.5-turbo",
		MaxTokens:   500,
		Temperature: 0.7,
		Messages: []chatMessage{
			{Role: "system", Content: SystemInstruction(profile, lang)},
			{Role: "user", Content: ContextPrompt(summary, loanCount, lendingCount) + "\n\nUser Question: " + userQuery},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, completionsURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("advice backend returned status %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("advice backend returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}
