package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"hrms/internal/domain/employeeid"
	"hrms/internal/platform/sanitize"
)

const maxEmployeeIDAttempts = 5

type Service struct {
	Store      StoreAPI
	IDs        *employeeid.Generator
	Secret     string
	SessionTTL time.Duration
	Now        func() time.Time
}

func NewService(store StoreAPI, secret string, sessionTTL time.Duration) *Service {
	return &Service{
		Store:      store,
		IDs:        employeeid.NewGenerator(),
		Secret:     secret,
		SessionTTL: sessionTTL,
		Now:        time.Now,
	}
}

// Signup registers an account with a blank profile. Only an HR caller may create another HR account.
func (s *Service) Signup(ctx context.Context, in SignupInput, callerRole string) (Registration, error) {
	role := in.Role
	if role == "" {
		role = RoleEmployee
	}
	if !ValidRole(role) {
		return Registration{}, ErrInvalidRole
	}
	if role == RoleHR && !IsHR(callerRole) {
		return Registration{}, ErrRoleNotAllowed
	}
	if err := ValidatePassword(in.Password); err != nil {
		return Registration{}, err
	}

	name := sanitize.Text(in.Name)
	first, last := SplitName(name)
	account, err := s.register(ctx, NewAccount{
		Name:  name,
		Email: NormalizeEmail(in.Email),
		Role:  role,
		Profile: ProfileSeed{
			FirstName:   first,
			LastName:    last,
			JoiningDate: s.Now(),
		},
	}, in.Password)
	if err != nil {
		return Registration{}, err
	}
	return Registration{EmployeeID: account.EmployeeID, User: account}, nil
}

// AddEmployee is the HR onboarding path. A temporary password is generated when none is supplied.
func (s *Service) AddEmployee(ctx context.Context, in EmployeeInput) (Registration, error) {
	role := in.Role
	if role == "" {
		role = RoleEmployee
	}
	if !ValidRole(role) {
		return Registration{}, ErrInvalidRole
	}

	password := in.Password
	var temporary string
	if password == "" {
		generated, err := TemporaryPassword()
		if err != nil {
			return Registration{}, fmt.Errorf("generate temporary password: %w", err)
		}
		password = generated
		temporary = generated
	} else if err := ValidatePassword(password); err != nil {
		return Registration{}, err
	}

	name := sanitize.Text(in.Name)
	first, last := SplitName(name)
	account, err := s.register(ctx, NewAccount{
		Name:  name,
		Email: NormalizeEmail(in.Email),
		Role:  role,
		Profile: ProfileSeed{
			FirstName:   first,
			LastName:    last,
			Designation: sanitize.Text(in.Designation),
			Department:  sanitize.Text(in.Department),
			BaseSalary:  sanitize.Text(in.Salary),
			JoiningDate: s.Now(),
		},
	}, password)
	if err != nil {
		return Registration{}, err
	}
	return Registration{EmployeeID: account.EmployeeID, User: account, TemporaryPassword: temporary}, nil
}

func (s *Service) register(ctx context.Context, in NewAccount, password string) (Account, error) {
	exists, err := s.Store.EmailExists(ctx, in.Email)
	if err != nil {
		return Account{}, err
	}
	if exists {
		return Account{}, ErrEmailTaken
	}

	in.PasswordHash, err = HashPassword(password)
	if err != nil {
		return Account{}, err
	}

	for attempt := 0; attempt < maxEmployeeIDAttempts; attempt++ {
		in.EmployeeID = s.IDs.New(in.Name)
		account, err := s.Store.CreateAccount(ctx, in)
		if err == nil {
			return account, nil
		}
		if !errors.Is(err, ErrEmployeeIDTaken) {
			return Account{}, err
		}
		slog.Warn("employee id collision", "employeeId", in.EmployeeID, "attempt", attempt+1)
	}
	return Account{}, ErrEmployeeIDExhausted
}

// Login authenticates by employee id and opens a session bound to the returned token.
func (s *Service) Login(ctx context.Context, employeeID, password string, meta SessionMeta) (LoginResult, error) {
	record, err := s.Store.FindByEmployeeID(ctx, strings.ToUpper(strings.TrimSpace(employeeID)))
	if errors.Is(err, ErrAccountNotFound) {
		_ = CheckPassword(dummyHash(), password)
		slog.Warn("login failed", "employeeId", employeeID, "reason", "unknown_account")
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}
	if err := CheckPassword(record.PasswordHash, password); err != nil {
		slog.Warn("login failed", "employeeId", employeeID, "reason", "password_mismatch")
		return LoginResult{}, ErrInvalidCredentials
	}

	now := s.Now()
	session := Session{
		ID:        uuid.NewString(),
		AccountID: record.ID,
		ExpiresAt: now.Add(s.SessionTTL),
		UserAgent: meta.UserAgent,
		IPAddress: meta.IPAddress,
	}
	if err := s.Store.CreateSession(ctx, session); err != nil {
		return LoginResult{}, err
	}

	token, err := GenerateToken(s.Secret, Claims{
		AccountID:  record.ID,
		EmployeeID: record.EmployeeID,
		Role:       record.Role,
		SessionID:  session.ID,
	}, now, s.SessionTTL)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: token, ExpiresAt: session.ExpiresAt, User: record.Account}, nil
}

func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.Store.RevokeSession(ctx, sessionID)
}

func (s *Service) Me(ctx context.Context, accountID string) (Account, error) {
	return s.Store.GetAccount(ctx, accountID)
}

func (s *Service) SessionValid(ctx context.Context, sessionID, accountID string) (bool, error) {
	return s.Store.SessionValid(ctx, sessionID, accountID)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SplitName splits a display name on its first space.
func SplitName(name string) (string, string) {
	name = strings.TrimSpace(name)
	first, last, _ := strings.Cut(name, " ")
	return first, strings.TrimSpace(last)
}

var (
	dummyOnce sync.Once
	dummy     string
)

// dummyHash keeps the unknown-account path as slow as a real comparison.
func dummyHash() string {
	dummyOnce.Do(func() {
		dummy, _ = HashPassword("not-a-real-password")
	})
	return dummy
}
