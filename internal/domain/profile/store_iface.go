package profile

import "context"

type StoreAPI interface {
	Get(ctx context.Context, accountID string) (Profile, error)
	Apply(ctx context.Context, accountID string, upd Update) (Profile, error)
	ListEmployees(ctx context.Context) ([]Employee, error)
}
