package db

import (
	"context"
	"errors"
	"strings"

	"hrms/internal/domain/auth"
	"hrms/internal/platform/config"
)

type SeedResult struct {
	EmployeeID        string
	Created           bool
	TemporaryPassword string
}

// Seed ensures the bootstrap HR account from SEED_HR_* exists. Without an
// email it does nothing and returns a zero result.
func Seed(ctx context.Context, accounts *auth.Service, cfg config.Config) (SeedResult, error) {
	email := auth.NormalizeEmail(cfg.SeedHREmail)
	if email == "" {
		return SeedResult{}, nil
	}

	existing, err := accounts.Store.FindByEmail(ctx, email)
	if err == nil {
		return SeedResult{EmployeeID: existing.EmployeeID}, nil
	}
	if !errors.Is(err, auth.ErrAccountNotFound) {
		return SeedResult{}, err
	}

	name := strings.TrimSpace(cfg.SeedHRName)
	if name == "" {
		name = "HR Admin"
	}
	reg, err := accounts.AddEmployee(ctx, auth.EmployeeInput{
		Name:        name,
		Email:       email,
		Password:    cfg.SeedHRPassword,
		Role:        auth.RoleHR,
		Department:  "Human Resources",
		Designation: "HR Manager",
	})
	if err != nil {
		return SeedResult{}, err
	}
	return SeedResult{EmployeeID: reg.EmployeeID, Created: true, TemporaryPassword: reg.TemporaryPassword}, nil
}
