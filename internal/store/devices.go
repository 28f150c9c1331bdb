package store

import (
	"context"
)

// Device is a row of user_devices. Registration is owned by the mobile client; this
// service only reads it.
type Device struct {
	UserID   string `json:"user_id"`
	FCMToken string `json:"fcm_token"`
}

type DevicesStore struct {
	db Querier
}

// ActiveTokensByUserID returns the push tokens of every active device of one user.
func (s *DevicesStore) ActiveTokensByUserID(ctx context.Context, userID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	q := `SELECT fcm_token FROM user_devices WHERE user_id = $1 AND is_active = true`
	rows, err := s.db.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}

// ActiveDevices returns active devices of the given users, or of everyone when userIDs is empty.
func (s *DevicesStore) ActiveDevices(ctx context.Context, userIDs []string) ([]Device, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	q := `SELECT user_id, fcm_token FROM user_devices WHERE is_active = true`
	args := []any{}
	if len(userIDs) > 0 {
		q += ` AND user_id = ANY($1)`
		args = append(args, userIDs)
	}

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var devices []Device
	for rows.Next() {
		var d Device
		if err := rows.Scan(&d.UserID, &d.FCMToken); err != nil {
			return nil, err
		}
		devices = append(devices, d)
	}
	return devices, rows.Err()
}
