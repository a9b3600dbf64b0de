package db

import (
	"context"
	"database/sql"

	"finance-advisor/api/models"

	"github.com/lib/pq"
)

// UniqueViolation is Postgres error code 23505, raised on duplicate usernames.
const UniqueViolation = "23505"

// UserRecord is a row of the users table, password hash included. It never
// leaves this package boundary except toward the auth handlers.
type UserRecord struct {
	ID            string
	Username      string
	PasswordHash  string
	PreferredLang models.Language
}

func (u UserRecord) Public() models.AuthUser {
	return models.AuthUser{
		ID:            u.ID,
		Username:      u.Username,
		PreferredLang: u.PreferredLang,
	}
}

func CreateUser(ctx context.Context, user *UserRecord, telegramUserID *int64) error {
	query := `
		INSERT INTO users (id, username, password_hash, preferred_lang, telegram_user_id)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := DB.ExecContext(ctx, query, user.ID, user.Username, user.PasswordHash, user.PreferredLang, telegramUserID)
	return err
}

// IsUniqueViolation reports whether err is a duplicate-key failure.
func IsUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return string(pqErr.Code) == UniqueViolation
	}
	return false
}

// GetUserByUsername returns nil when no such user exists.
func GetUserByUsername(ctx context.Context, username string) (*UserRecord, error) {
	query := `
		SELECT id, username, password_hash, preferred_lang FROM users WHERE username = $1
	`
	user := &UserRecord{}
	err := DB.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.PreferredLang,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// GetUserByID returns nil when no such user exists.
func GetUserByID(ctx context.Context, id string) (*UserRecord, error) {
	query := `
		SELECT id, username, password_hash, preferred_lang FROM users WHERE id = $1
	`
	user := &UserRecord{}
	err := DB.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.PreferredLang,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// UpdatePreferredLang stores a language change made through the UI.
func UpdatePreferredLang(ctx context.Context, userID string, lang models.Language) error {
	query := `
		UPDATE users SET preferred_lang = $1 WHERE id = $2
	`
	_, err := DB.ExecContext(ctx, query, lang, userID)
	return err
}
