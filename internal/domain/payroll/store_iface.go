package payroll

import "context"

type StoreAPI interface {
	BaseSalary(ctx context.Context, accountID string) (string, error)
	Create(ctx context.Context, in NewRecord) (Record, error)
	Get(ctx context.Context, id string) (Entry, error)
	MarkPaid(ctx context.Context, id string) (Record, error)
	ListByAccount(ctx context.Context, accountID string) ([]Record, error)
	ListAll(ctx context.Context, year int) ([]Entry, error)
}

type Locker interface {
	Acquire(ctx context.Context, key string) (func(), bool)
}
