package auth

import "context"

type StoreAPI interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateAccount(ctx context.Context, in NewAccount) (Account, error)
	FindByEmployeeID(ctx context.Context, employeeID string) (AccountRecord, error)
	FindByEmail(ctx context.Context, email string) (AccountRecord, error)
	GetAccount(ctx context.Context, accountID string) (Account, error)
	CreateSession(ctx context.Context, session Session) error
	RevokeSession(ctx context.Context, sessionID string) error
	SessionValid(ctx context.Context, sessionID, accountID string) (bool, error)
}
