package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound          = errors.New("resource not found")
	QueryTimeoutDuration = time.Second * 5
)

// Querier is satisfied by *pgxpool.Pool, pgx.Tx and pgxmock pools.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Storage struct {
	Devices interface {
		ActiveTokensByUserID(ctx context.Context, userID string) ([]string, error)
		ActiveDevices(ctx context.Context, userIDs []string) ([]Device, error)
	}
	Profiles interface {
		FilterBySegments(ctx context.Context, userIDs, segments []string) ([]string, error)
	}
	Campaigns interface {
		InsertCampaignLog(ctx context.Context, l *CampaignLog) error
	}
}

func NewStorage(db Querier) Storage {
	return Storage{
		Devices:   &DevicesStore{db},
		Profiles:  &ProfilesStore{db},
		Campaigns: &CampaignsStore{db},
	}
}
