package payroll

import (
	"context"
	"fmt"
	"time"
)

type Service struct {
	Store StoreAPI
	Guard Locker
	Now   func() time.Time
}

func NewService(store StoreAPI, guard Locker) *Service {
	return &Service{Store: store, Guard: guard, Now: time.Now}
}

// Generate snapshots the employee's base salary into a Processing record for the period.
func (s *Service) Generate(ctx context.Context, in GenerateInput) (Record, error) {
	month, monthNum, embeddedYear, err := NormalizeMonth(in.Month)
	if err != nil {
		return Record{}, err
	}
	year := in.Year
	if year == 0 {
		year = embeddedYear
	}
	if year < 1900 || year > 9999 || (embeddedYear != 0 && embeddedYear != year) {
		return Record{}, ErrInvalidYear
	}
	bonus, err := ParseAmount(in.Bonus)
	if err != nil {
		return Record{}, fmt.Errorf("bonus: %w", err)
	}
	deductions, err := ParseAmount(in.Deductions)
	if err != nil {
		return Record{}, fmt.Errorf("deductions: %w", err)
	}

	if s.Guard != nil {
		release, ok := s.Guard.Acquire(ctx, fmt.Sprintf("payroll:%s:%d:%d", in.AccountID, monthNum, year))
		if !ok {
			return Record{}, ErrPeriodExists
		}
		defer release()
	}

	display, err := s.Store.BaseSalary(ctx, in.AccountID)
	if err != nil {
		return Record{}, err
	}
	base, err := ParseBaseSalary(display)
	if err != nil {
		return Record{}, err
	}

	return s.Store.Create(ctx, NewRecord{
		AccountID:   in.AccountID,
		Month:       month,
		MonthNumber: monthNum,
		Year:        year,
		Salary:      base,
		Bonus:       bonus,
		Deductions:  deductions,
		NetSalary:   NetSalary(base, bonus, deductions),
		Status:      StatusProcessing,
		CreatedBy:   in.CreatedBy,
	})
}

func (s *Service) MarkPaid(ctx context.Context, id string) (Record, error) {
	return s.Store.MarkPaid(ctx, id)
}

func (s *Service) Get(ctx context.Context, id string) (Entry, error) {
	return s.Store.Get(ctx, id)
}

func (s *Service) ListMine(ctx context.Context, accountID string) ([]Record, error) {
	return s.Store.ListByAccount(ctx, accountID)
}

func (s *Service) ListAll(ctx context.Context) ([]Entry, error) {
	return s.Store.ListAll(ctx, 0)
}

// Export renders the payroll register for year (all years when zero) as XLSX.
func (s *Service) Export(ctx context.Context, year int) ([]byte, error) {
	entries, err := s.Store.ListAll(ctx, year)
	if err != nil {
		return nil, err
	}
	return RegisterXLSX(entries)
}

// Payslip renders the PDF for id once canView admits the record. A record the
// caller may not view is reported as not found so its existence stays hidden.
func (s *Service) Payslip(ctx context.Context, id string, canView func(Entry) bool) (Entry, []byte, error) {
	entry, err := s.Store.Get(ctx, id)
	if err != nil {
		return Entry{}, nil, err
	}
	if canView != nil && !canView(entry) {
		return Entry{}, nil, ErrPayrollNotFound
	}
	pdf, err := PayslipPDF(entry, s.Now())
	if err != nil {
		return Entry{}, nil, err
	}
	return entry, pdf, nil
}
