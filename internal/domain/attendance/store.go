package attendance

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"hrms/internal/platform/pgerr"
	"hrms/internal/platform/querier"
)

const uniqueDay = "attendance_account_day_key"

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const recordColumns = `id, account_id, to_char(work_date, 'YYYY-MM-DD'), check_in, check_out, status, check_in_at, check_out_at`

func scanRecord(row pgx.Row) (Record, error) {
	var r Record
	err := row.Scan(&r.ID, &r.AccountID, &r.Date, &r.CheckIn, &r.CheckOut, &r.Status, &r.CheckInAt, &r.CheckOutAt)
	return r, err
}

func (s *Store) FindByDay(ctx context.Context, accountID, day string) (Record, bool, error) {
	r, err := scanRecord(s.DB.QueryRow(ctx, `
    SELECT `+recordColumns+`
    FROM attendance_records
    WHERE account_id = $1 AND work_date = $2::date
  `, accountID, day))
	if pgerr.IsNoRows(err) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	return r, true, nil
}

func (s *Store) Insert(ctx context.Context, rec Record) (Record, error) {
	out, err := scanRecord(s.DB.QueryRow(ctx, `
    INSERT INTO attendance_records (account_id, work_date, check_in, check_in_at, status)
    VALUES ($1, $2::date, $3, $4, $5)
    RETURNING `+recordColumns,
		rec.AccountID, rec.Date, rec.CheckIn, rec.CheckInAt, rec.Status))
	if pgerr.IsUniqueViolation(err, uniqueDay) {
		return Record{}, ErrAlreadyCheckedIn
	}
	return out, err
}

func (s *Store) SetCheckOut(ctx context.Context, accountID, day, display string, at time.Time) (Record, error) {
	out, err := scanRecord(s.DB.QueryRow(ctx, `
    UPDATE attendance_records
    SET check_out = $3, check_out_at = $4
    WHERE account_id = $1 AND work_date = $2::date
    RETURNING `+recordColumns,
		accountID, day, display, at))
	if pgerr.IsNoRows(err) {
		return Record{}, ErrNoCheckIn
	}
	return out, err
}

func (s *Store) History(ctx context.Context, accountID string) ([]Record, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+recordColumns+`
    FROM attendance_records
    WHERE account_id = $1
    ORDER BY work_date DESC
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

// ForDay lists every account for day; accounts without a record come back Absent.
func (s *Store) ForDay(ctx context.Context, day string) ([]DailyEntry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT a.id, a.employee_id, a.name, $1::text,
           r.check_in, r.check_out, COALESCE(r.status, $2)
    FROM accounts a
    LEFT JOIN attendance_records r ON r.account_id = a.id AND r.work_date = $1::date
    ORDER BY r.check_in_at NULLS LAST, a.name
  `, day, StatusAbsent)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []DailyEntry{}
	for rows.Next() {
		var e DailyEntry
		if err := rows.Scan(&e.AccountID, &e.EmployeeID, &e.Name, &e.Date, &e.CheckIn, &e.CheckOut, &e.Status); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
