package auth

import (
	"context"
	"fmt"

	"hrms/internal/platform/pgerr"
	"hrms/internal/platform/querier"
)

type Store struct {
	DB querier.TxBeginner
}

func NewStore(db querier.TxBeginner) *Store {
	return &Store{DB: db}
}

func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.DB.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM accounts WHERE email = $1)", email).Scan(&exists)
	return exists, err
}

// CreateAccount inserts the account and its profile in one transaction.
func (s *Store) CreateAccount(ctx context.Context, in NewAccount) (Account, error) {
	var out Account
	err := querier.WithTx(ctx, s.DB, func(q querier.Querier) error {
		if err := q.QueryRow(ctx, `
      INSERT INTO accounts (employee_id, name, email, password_hash, role)
      VALUES ($1,$2,$3,$4,$5)
      RETURNING id, employee_id, name, email, role, created_at
    `, in.EmployeeID, in.Name, in.Email, in.PasswordHash, in.Role).Scan(
			&out.ID, &out.EmployeeID, &out.Name, &out.Email, &out.Role, &out.CreatedAt,
		); err != nil {
			return err
		}

		_, err := q.Exec(ctx, `
      INSERT INTO profiles (account_id, first_name, last_name, designation, department, base_salary, joining_date)
      VALUES ($1,$2,$3,$4,$5,$6,$7)
    `, out.ID, in.Profile.FirstName, in.Profile.LastName, in.Profile.Designation, in.Profile.Department,
			in.Profile.BaseSalary, in.Profile.JoiningDate)
		return err
	})
	switch {
	case pgerr.IsUniqueViolation(err, "accounts_email_key"):
		return Account{}, ErrEmailTaken
	case pgerr.IsUniqueViolation(err, "accounts_employee_id_key"):
		return Account{}, ErrEmployeeIDTaken
	case err != nil:
		return Account{}, fmt.Errorf("create account: %w", err)
	}
	return out, nil
}

func (s *Store) FindByEmployeeID(ctx context.Context, employeeID string) (AccountRecord, error) {
	return s.findOne(ctx, "employee_id", employeeID)
}

func (s *Store) FindByEmail(ctx context.Context, email string) (AccountRecord, error) {
	return s.findOne(ctx, "email", email)
}

func (s *Store) findOne(ctx context.Context, column, value string) (AccountRecord, error) {
	var out AccountRecord
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, name, email, role, created_at, password_hash
    FROM accounts
    WHERE `+column+` = $1
  `, value).Scan(&out.ID, &out.EmployeeID, &out.Name, &out.Email, &out.Role, &out.CreatedAt, &out.PasswordHash)
	if pgerr.IsNoRows(err) {
		return AccountRecord{}, ErrAccountNotFound
	}
	return out, err
}

func (s *Store) GetAccount(ctx context.Context, accountID string) (Account, error) {
	var out Account
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, name, email, role, created_at
    FROM accounts
    WHERE id = $1
  `, accountID).Scan(&out.ID, &out.EmployeeID, &out.Name, &out.Email, &out.Role, &out.CreatedAt)
	if pgerr.IsNoRows(err) {
		return Account{}, ErrAccountNotFound
	}
	return out, err
}

func (s *Store) CreateSession(ctx context.Context, session Session) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO sessions (id, account_id, expires_at, user_agent, ip_address)
    VALUES ($1,$2,$3,$4,$5)
  `, session.ID, session.AccountID, session.ExpiresAt, session.UserAgent, session.IPAddress)
	return err
}

func (s *Store) RevokeSession(ctx context.Context, sessionID string) error {
	_, err := s.DB.Exec(ctx, "UPDATE sessions SET revoked_at = now() WHERE id = $1 AND revoked_at IS NULL", sessionID)
	return err
}

func (s *Store) SessionValid(ctx context.Context, sessionID, accountID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM sessions
    WHERE id = $1 AND account_id = $2 AND expires_at > now() AND revoked_at IS NULL
  `, sessionID, accountID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
