// Package bot is the Telegram front door: it lets the user pick a language
// and hands them a WebApp button that opens the tracker with ?lang=<code>
// already set, so the app starts in the chosen language.
package bot

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"finance-advisor/api/langpref"
	"finance-advisor/api/logger"
	"finance-advisor/api/models"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

type Config struct {
	Token     string
	WebAppURL string
}

// Bot wraps the telebot instance plus the per-chat language choices. The
// choices live in memory only; losing them on restart just means the user
// picks again at /start.
type Bot struct {
	tb  *tele.Bot
	cfg Config

	mu       sync.Mutex
	userLang map[int64]models.Language
}

func New(cfg Config) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	tb, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}

	b := &Bot{
		tb:       tb,
		cfg:      cfg,
		userLang: make(map[int64]models.Language),
	}
	b.register()
	return b, nil
}

// Start begins long polling. Blocks until Stop is called.
func (b *Bot) Start() {
	logger.Get().Info("telegram bot polling")
	b.tb.Start()
}

func (b *Bot) Stop() {
	b.tb.Stop()
}

func (b *Bot) register() {
	selector := &tele.ReplyMarkup{}
	btnEN := selector.Data("🇺🇸 English", "lang_EN")
	btnUZ := selector.Data("🇺🇿 O'zbek", "lang_UZ")
	btnRU := selector.Data("🇷🇺 Русский", "lang_RU")
	selector.Inline(selector.Row(btnEN, btnUZ, btnRU))

	b.tb.Handle("/start", func(c tele.Context) error {
		lang := b.langFor(c.Sender().ID)
		return c.Send(textFor(lang).ChooseLang, selector)
	})

	b.tb.Handle(&btnEN, b.langChosen(models.LanguageEN))
	b.tb.Handle(&btnUZ, b.langChosen(models.LanguageUZ))
	b.tb.Handle(&btnRU, b.langChosen(models.LanguageRU))

	b.tb.Handle(tele.OnText, func(c tele.Context) error {
		for _, t := range texts {
			if c.Text() == t.AboutMeBtn {
				return c.Send(textFor(b.langFor(c.Sender().ID)).AboutMe)
			}
		}
		return nil
	})
}

func (b *Bot) langChosen(lang models.Language) tele.HandlerFunc {
	return func(c tele.Context) error {
		b.mu.Lock()
		b.userLang[c.Sender().ID] = lang
		b.mu.Unlock()

		// Drop the inline keyboard so the choice can't be re-clicked.
		if err := c.Edit(&tele.ReplyMarkup{}); err != nil {
			logger.Get().Debug("removing language keyboard", zap.Error(err))
		}

		t := textFor(lang)
		menu := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
		openBtn := menu.WebApp(t.OpenApp, &tele.WebApp{URL: b.webAppURL(lang)})
		aboutBtn := menu.Text(t.AboutMeBtn)
		menu.Reply(menu.Row(openBtn), menu.Row(aboutBtn))

		return c.Send(t.Welcome, menu)
	}
}

func (b *Bot) langFor(userID int64) models.Language {
	b.mu.Lock()
	defer b.mu.Unlock()
	if lang, ok := b.userLang[userID]; ok {
		return lang
	}
	return models.DefaultLanguage
}

func (b *Bot) webAppURL(lang models.Language) string {
	sep := "?"
	if strings.Contains(b.cfg.WebAppURL, "?") {
		sep = "&"
	}
	code, _ := langpref.Normalize(string(lang))
	return b.cfg.WebAppURL + sep + "lang=" + strings.ToLower(string(code))
}
