package db

import (
	"context"
	"database/sql"
	"encoding/json"
)

// GetState returns the stored envelope verbatim, or nil for a brand-new
// account that never saved one.
func GetState(ctx context.Context, userID string) (json.RawMessage, error) {
	query := `
		SELECT state FROM financial_states WHERE user_id = $1
	`
	var raw []byte
	err := DB.QueryRowContext(ctx, query, userID).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return json.RawMessage(raw), nil
}

// UpsertState overwrites the user's envelope unconditionally: last write
// received wins, no conflict detection.
func UpsertState(ctx context.Context, userID string, state json.RawMessage) error {
	query := `
		INSERT INTO financial_states (user_id, state)
		VALUES ($1, $2)
		ON CONFLICT (user_id)
		DO UPDATE SET state = EXCLUDED.state, updated_at = NOW()
	`
	_, err := DB.ExecContext(ctx, query, userID, []byte(state))
	return err
}
