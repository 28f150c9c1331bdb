package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type CampaignLog struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	TargetCount int       `json:"target_count"`
	SentCount   int       `json:"sent_count"`
	Payload     any       `json:"payload,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type CampaignsStore struct {
	db Querier
}

// InsertCampaignLog writes one notification_logs row. ID and CreatedAt are filled in when zero.
func (s *CampaignsStore) InsertCampaignLog(ctx context.Context, l *CampaignLog) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}

	var jb []byte
	if l.Payload != nil {
		b, err := json.Marshal(l.Payload)
		if err != nil {
			return fmt.Errorf("encode campaign payload: %w", err)
		}
		jb = b
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := s.db.Exec(ctx, `
		INSERT INTO notification_logs (id, type, title, target_count, sent_count, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, l.ID, l.Type, l.Title, l.TargetCount, l.SentCount, jb, l.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification_log: %w", err)
	}
	return nil
}
