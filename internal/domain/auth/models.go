package auth

import "time"

type Account struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AccountRecord is an Account together with its password hash. It never leaves the package boundary as JSON.
type AccountRecord struct {
	Account
	PasswordHash string
}

// ProfileSeed holds the profile columns written alongside a new account.
type ProfileSeed struct {
	FirstName   string
	LastName    string
	Designation string
	Department  string
	BaseSalary  string
	JoiningDate time.Time
}

type NewAccount struct {
	EmployeeID   string
	Name         string
	Email        string
	Role         string
	PasswordHash string
	Profile      ProfileSeed
}

type Session struct {
	ID        string
	AccountID string
	ExpiresAt time.Time
	UserAgent string
	IPAddress string
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type EmployeeInput struct {
	Name        string
	Email       string
	Password    string
	Role        string
	Department  string
	Designation string
	Salary      string
}

type Registration struct {
	EmployeeID        string  `json:"employeeId"`
	User              Account `json:"user"`
	TemporaryPassword string  `json:"temporaryPassword,omitempty"`
}

type SessionMeta struct {
	UserAgent string
	IPAddress string
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      Account   `json:"user"`
}
