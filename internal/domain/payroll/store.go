package payroll

import (
	"context"

	"github.com/jackc/pgx/v5"

	"hrms/internal/platform/pgerr"
	"hrms/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const recordColumns = `
  r.id, r.account_id, r.month, r.month_num, r.year, r.salary, r.bonus, r.deductions,
  r.net_salary, r.status, r.payment_date, r.created_at`

func scanRecord(row pgx.Row, extra ...any) (Record, error) {
	var r Record
	dest := []any{
		&r.ID, &r.AccountID, &r.Month, &r.MonthNumber, &r.Year, &r.Salary, &r.Bonus, &r.Deductions,
		&r.NetSalary, &r.Status, &r.PaymentDate, &r.CreatedAt,
	}
	err := row.Scan(append(dest, extra...)...)
	return r, err
}

func (s *Store) BaseSalary(ctx context.Context, accountID string) (string, error) {
	var salary string
	err := s.DB.QueryRow(ctx, "SELECT base_salary FROM profiles WHERE account_id = $1", accountID).Scan(&salary)
	if pgerr.IsNoRows(err) {
		return "", ErrSalaryMissing
	}
	return salary, err
}

func (s *Store) Create(ctx context.Context, in NewRecord) (Record, error) {
	r, err := scanRecord(s.DB.QueryRow(ctx, `
    INSERT INTO payroll_records AS r
      (account_id, month, month_num, year, salary, bonus, deductions, net_salary, status, created_by)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NULLIF($10, '')::uuid)
    RETURNING`+recordColumns,
		in.AccountID, in.Month, in.MonthNumber, in.Year, in.Salary, in.Bonus, in.Deductions,
		in.NetSalary, in.Status, in.CreatedBy))
	if pgerr.IsUniqueViolation(err, uniquePeriod) {
		return Record{}, ErrPeriodExists
	}
	return r, err
}

func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	var e Entry
	var err error
	e.Record, err = scanRecord(s.DB.QueryRow(ctx, `
    SELECT`+recordColumns+`, a.employee_id, a.name
    FROM payroll_records r
    JOIN accounts a ON a.id = r.account_id
    WHERE r.id = $1
  `, id), &e.EmployeeID, &e.Name)
	if pgerr.IsNoRows(err) {
		return Entry{}, ErrPayrollNotFound
	}
	return e, err
}

// MarkPaid sets status Paid and stamps payment_date, overwriting any earlier stamp.
func (s *Store) MarkPaid(ctx context.Context, id string) (Record, error) {
	r, err := scanRecord(s.DB.QueryRow(ctx, `
    UPDATE payroll_records r
    SET status = 'Paid', payment_date = now()
    WHERE r.id = $1
    RETURNING`+recordColumns, id))
	if pgerr.IsNoRows(err) {
		return Record{}, ErrPayrollNotFound
	}
	return r, err
}

func (s *Store) ListByAccount(ctx context.Context, accountID string) ([]Record, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+recordColumns+`
    FROM payroll_records r
    WHERE r.account_id = $1
    ORDER BY r.year DESC, r.month_num DESC
  `, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListAll returns every record, optionally restricted to year when year > 0.
func (s *Store) ListAll(ctx context.Context, year int) ([]Entry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+recordColumns+`, a.employee_id, a.name
    FROM payroll_records r
    JOIN accounts a ON a.id = r.account_id
    WHERE $1 = 0 OR r.year = $1
    ORDER BY r.year DESC, r.month_num DESC, a.name
  `, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var e Entry
		e.Record, err = scanRecord(rows, &e.EmployeeID, &e.Name)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
