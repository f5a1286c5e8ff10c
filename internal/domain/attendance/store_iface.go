package attendance

import (
	"context"
	"time"
)

type StoreAPI interface {
	FindByDay(ctx context.Context, accountID, day string) (Record, bool, error)
	Insert(ctx context.Context, rec Record) (Record, error)
	SetCheckOut(ctx context.Context, accountID, day, display string, at time.Time) (Record, error)
	History(ctx context.Context, accountID string) ([]Record, error)
	ForDay(ctx context.Context, day string) ([]DailyEntry, error)
}

// Locker collapses duplicate submissions before they reach the store.
type Locker interface {
	Acquire(ctx context.Context, key string) (func(), bool)
}
