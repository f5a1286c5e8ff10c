package auth

import (
	"context"
	"strconv"
	"sync"
	"time"
)

type memStore struct {
	mu         sync.Mutex
	accounts   map[string]AccountRecord
	profiles   map[string]ProfileSeed
	sessions   map[string]Session
	revoked    map[string]bool
	takenIDs   map[string]bool
	collisions int
}

func newMemStore() *memStore {
	return &memStore{
		accounts: map[string]AccountRecord{},
		profiles: map[string]ProfileSeed{},
		sessions: map[string]Session{},
		revoked:  map[string]bool{},
		takenIDs: map[string]bool{},
	}
}

func (m *memStore) EmailExists(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, acct := range m.accounts {
		if acct.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CreateAccount(_ context.Context, in NewAccount) (Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.collisions > 0 {
		m.collisions--
		return Account{}, ErrEmployeeIDTaken
	}
	if m.takenIDs[in.EmployeeID] {
		return Account{}, ErrEmployeeIDTaken
	}
	for _, acct := range m.accounts {
		if acct.Email == in.Email {
			return Account{}, ErrEmailTaken
		}
	}
	acct := Account{
		ID:         "acct-" + strconv.Itoa(len(m.accounts)+1),
		EmployeeID: in.EmployeeID,
		Name:       in.Name,
		Email:      in.Email,
		Role:       in.Role,
		CreatedAt:  time.Now(),
	}
	m.accounts[acct.ID] = AccountRecord{Account: acct, PasswordHash: in.PasswordHash}
	m.profiles[acct.ID] = in.Profile
	m.takenIDs[in.EmployeeID] = true
	return acct, nil
}

func (m *memStore) FindByEmployeeID(_ context.Context, employeeID string) (AccountRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, acct := range m.accounts {
		if acct.EmployeeID == employeeID {
			return acct, nil
		}
	}
	return AccountRecord{}, ErrAccountNotFound
}

func (m *memStore) FindByEmail(_ context.Context, email string) (AccountRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, acct := range m.accounts {
		if acct.Email == email {
			return acct, nil
		}
	}
	return AccountRecord{}, ErrAccountNotFound
}

func (m *memStore) GetAccount(_ context.Context, accountID string) (Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[accountID]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return acct.Account, nil
}

func (m *memStore) CreateSession(_ context.Context, session Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session
	return nil
}

func (m *memStore) RevokeSession(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[sessionID] = true
	return nil
}

func (m *memStore) SessionValid(_ context.Context, sessionID, accountID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[sessionID]
	if !ok || m.revoked[sessionID] || session.AccountID != accountID {
		return false, nil
	}
	return session.ExpiresAt.After(time.Now()), nil
}
