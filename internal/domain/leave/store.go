package leave

import (
	"context"
	"time"

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

const requestColumns = `
  l.id, l.account_id, l.leave_type, l.start_date, l.end_date, l.reason, l.status,
  l.admin_comments, l.decided_by::text, l.decided_at, l.applied_at`

func scanRequest(row pgx.Row, extra ...any) (Request, error) {
	var r Request
	dest := []any{
		&r.ID, &r.AccountID, &r.LeaveType, &r.StartDate, &r.EndDate, &r.Reason, &r.Status,
		&r.AdminComments, &r.DecidedBy, &r.DecidedAt, &r.AppliedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return Request{}, err
	}
	r.Days, _ = CalculateDays(r.StartDate, r.EndDate)
	return r, nil
}

func (s *Store) HasOverlap(ctx context.Context, accountID string, start, end time.Time) (bool, error) {
	var exists bool
	err := s.DB.QueryRow(ctx, `
    SELECT EXISTS(
      SELECT 1 FROM leave_requests
      WHERE account_id = $1
        AND status IN ('Pending', 'Approved')
        AND start_date <= $3::date AND end_date >= $2::date
    )
  `, accountID, start, end).Scan(&exists)
	return exists, err
}

func (s *Store) Create(ctx context.Context, in ApplyInput) (Request, error) {
	return scanRequest(s.DB.QueryRow(ctx, `
    INSERT INTO leave_requests AS l (account_id, leave_type, start_date, end_date, reason)
    VALUES ($1, $2, $3::date, $4::date, $5)
    RETURNING`+requestColumns,
		in.AccountID, in.LeaveType, in.StartDate, in.EndDate, in.Reason))
}

func (s *Store) Get(ctx context.Context, id string) (Request, error) {
	r, err := scanRequest(s.DB.QueryRow(ctx, `SELECT`+requestColumns+` FROM leave_requests l WHERE l.id = $1`, id))
	if pgerr.IsNoRows(err) {
		return Request{}, ErrLeaveNotFound
	}
	return r, err
}

// Decide moves a Pending request to its terminal status. Decided requests are left untouched.
func (s *Store) Decide(ctx context.Context, id, status, comments, deciderID string) (Request, error) {
	r, err := scanRequest(s.DB.QueryRow(ctx, `
    UPDATE leave_requests l
    SET status = $2, admin_comments = $3, decided_by = $4, decided_at = now()
    WHERE l.id = $1 AND l.status = 'Pending'
    RETURNING`+requestColumns,
		id, status, comments, deciderID))
	if pgerr.IsNoRows(err) {
		if _, getErr := s.Get(ctx, id); getErr != nil {
			return Request{}, getErr
		}
		return Request{}, ErrAlreadyDecided
	}
	return r, err
}

func (s *Store) ListByAccount(ctx context.Context, accountID string) ([]Request, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+requestColumns+`
    FROM leave_requests l
    WHERE l.account_id = $1
    ORDER BY l.applied_at DESC
  `, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Request{}
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) ListAll(ctx context.Context) ([]Entry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+requestColumns+`, a.employee_id, a.name
    FROM leave_requests l
    JOIN accounts a ON a.id = l.account_id
    ORDER BY l.applied_at DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var e Entry
		e.Request, err = scanRequest(rows, &e.EmployeeID, &e.Name)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
