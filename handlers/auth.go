package handlers

import (
	"net/http"
	"regexp"
	"strings"

	"finance-advisor/api/db"
	"finance-advisor/api/langpref"
	"finance-advisor/api/logger"
	"finance-advisor/api/middleware"
	"finance-advisor/api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

type signupRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	PreferredLang string `json:"preferredLang"`
	// Lang is accepted as an alias for clients that send the envelope field
	// name instead.
	Lang           string `json:"lang"`
	TelegramUserID *int64 `json:"telegramUserId"`
}

// language picks the account language from the request, preferring the
// canonical preferredLang field. Unknown or absent codes default to EN.
func (r signupRequest) language() models.Language {
	if l, ok := langpref.Normalize(r.PreferredLang); ok {
		return l
	}
	if l, ok := langpref.Normalize(r.Lang); ok {
		return l
	}
	return models.DefaultLanguage
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleSignup creates an account and returns a fresh session token. The
// preferred language defaults to EN when the request carries an unknown code.
func HandleSignup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	if !usernameRe.MatchString(req.Username) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username must be 3-20 characters (letters, numbers, underscore)"})
		return
	}
	if len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 10)
	if err != nil {
		logger.Get().Error("hashing password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	user := &db.UserRecord{
		ID:            uuid.NewString(),
		Username:      req.Username,
		PasswordHash:  string(hash),
		PreferredLang: req.language(),
	}
	if err := db.CreateUser(c.Request.Context(), user, req.TelegramUserID); err != nil {
		if db.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
			return
		}
		logger.Get().Error("creating user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	token, err := middleware.SignToken(user.Public())
	if err != nil {
		logger.Get().Error("signing token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	c.JSON(http.StatusCreated, models.AuthResponse{Token: token, User: user.Public()})
}

// HandleLogin verifies credentials and returns a fresh session token.
func HandleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := db.GetUserByUsername(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Username)))
	if err != nil {
		logger.Get().Error("looking up user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, err := middleware.SignToken(user.Public())
	if err != nil {
		logger.Get().Error("signing token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{Token: token, User: user.Public()})
}
