package leave

import (
	"context"
	"time"
)

type StoreAPI interface {
	HasOverlap(ctx context.Context, accountID string, start, end time.Time) (bool, error)
	Create(ctx context.Context, in ApplyInput) (Request, error)
	Get(ctx context.Context, id string) (Request, error)
	Decide(ctx context.Context, id, status, comments, deciderID string) (Request, error)
	ListByAccount(ctx context.Context, accountID string) ([]Request, error)
	ListAll(ctx context.Context) ([]Entry, error)
}

type Locker interface {
	Acquire(ctx context.Context, key string) (func(), bool)
}
