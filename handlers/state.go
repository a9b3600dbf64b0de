package handlers

import (
	"encoding/json"
	"net/http"

	"finance-advisor/api/db"
	"finance-advisor/api/langpref"
	"finance-advisor/api/logger"
	"finance-advisor/api/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandleGetMe returns the account record plus the stored envelope. The
// envelope comes back exactly as it was last saved; a null state tells the
// client this account never saved one.
func HandleGetMe(c *gin.Context) {
	claims, ok := middleware.UserClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	user, err := db.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		logger.Get().Error("fetching user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch account"})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account no longer exists"})
		return
	}

	state, err := db.GetState(c.Request.Context(), claims.UserID)
	if err != nil {
		logger.Get().Error("fetching state", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch state"})
		return
	}

	resp := gin.H{"user": user.Public()}
	if state == nil {
		resp["state"] = nil
	} else {
		resp["state"] = state
	}
	c.JSON(http.StatusOK, resp)
}

// HandleSaveMe stores the envelope verbatim. The service does not interpret
// the contents beyond requiring a JSON object; last write wins. The lang field
// inside the envelope, when present, also updates the account's preferred
// language so future sessions start in it.
func HandleSaveMe(c *gin.Context) {
	claims, ok := middleware.UserClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var raw json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "State must be a JSON object"})
		return
	}

	if err := db.UpsertState(c.Request.Context(), claims.UserID, raw); err != nil {
		logger.Get().Error("saving state", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save state"})
		return
	}

	if langRaw, exists := envelope["lang"]; exists {
		var code string
		if err := json.Unmarshal(langRaw, &code); err == nil {
			if lang, valid := langpref.Normalize(code); valid {
				if err := db.UpdatePreferredLang(c.Request.Context(), claims.UserID, lang); err != nil {
					logger.Get().Warn("updating preferred language", zap.Error(err))
				}
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
