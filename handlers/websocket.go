package handlers

import (
	"net/http"
	"sync"
	"time"

	"finance-advisor/api/db"
	"finance-advisor/api/llm"
	"finance-advisor/api/logger"
	"finance-advisor/api/metrics"
	"finance-advisor/api/middleware"
	"finance-advisor/api/migrate"
	"finance-advisor/api/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development
	},
}

var (
	connectionsMu sync.Mutex
	connections   = make(map[string]*websocket.Conn)
)

type chatInbound struct {
	Text string          `json:"text"`
	Lang models.Language `json:"lang"`
}

type chatOutbound struct {
	Role models.ChatRole `json:"role"`
	Text string          `json:"text"`
}

// HandleChatWebsocket upgrades the connection and answers each inbound
// question against the user's stored envelope. One connection per user;
// a new connection replaces the old one.
func HandleChatWebsocket(c *gin.Context) {
	claims, ok := middleware.UserClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Get().Error("upgrading connection", zap.Error(err))
		return
	}

	connectionsMu.Lock()
	if old, exists := connections[claims.UserID]; exists {
		old.Close()
	}
	connections[claims.UserID] = conn
	connectionsMu.Unlock()

	logger.Get().Info("chat connection established",
		zap.String("user_id", claims.UserID),
		zap.String("remote", c.Request.RemoteAddr))

	go serveChat(claims.UserID, conn)
}

func serveChat(userID string, conn *websocket.Conn) {
	defer func() {
		conn.Close()
		connectionsMu.Lock()
		if connections[userID] == conn {
			delete(connections, userID)
		}
		connectionsMu.Unlock()
		logger.Get().Info("chat connection closed", zap.String("user_id", userID))
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(5 * time.Minute)); err != nil {
			logger.Get().Error("setting read deadline", zap.Error(err))
			return
		}

		var in chatInbound
		if err := conn.ReadJSON(&in); err != nil {
			logger.Get().Info("chat read ended", zap.String("user_id", userID), zap.Error(err))
			return
		}
		if in.Text == "" {
			continue
		}

		reply := answerQuestion(userID, in)
		if err := conn.WriteJSON(chatOutbound{Role: models.ChatRoleModel, Text: reply}); err != nil {
			logger.Get().Error("writing chat reply", zap.Error(err))
			return
		}
	}
}

func answerQuestion(userID string, in chatInbound) string {
	ctx, cancel := contextWithChatTimeout()
	defer cancel()

	lang := in.Lang
	if !models.IsSupportedLanguage(lang) {
		lang = models.DefaultLanguage
	}

	state := models.EmptyState(lang)
	raw, err := db.GetState(ctx, userID)
	if err != nil {
		logger.Get().Error("loading state for chat", zap.Error(err))
	} else if raw != nil {
		if upgraded, err := migrate.State(raw); err != nil {
			logger.Get().Warn("unreadable state for chat", zap.Error(err))
		} else {
			state = upgraded
		}
	}

	summary := metrics.Compute(state, metrics.DefaultBucketMap(), time.Now())
	reply, err := llm.GetFinancialAdvice(ctx, state.Profile, summary, len(state.Loans), len(state.Lendings), in.Text, lang)
	if err != nil {
		logger.Get().Error("fetching advice", zap.Error(err))
		return fallbackReply(lang)
	}
	return reply
}

func fallbackReply(lang models.Language) string {
	switch lang {
	case models.LanguageUZ:
		return "Kechirasiz, hozir javob bera olmayman. Keyinroq urinib ko'ring."
	case models.LanguageRU:
		return "Извините, сейчас не могу ответить. Попробуйте позже."
	default:
		return "Sorry, I can't answer right now. Please try again later."
	}
}
