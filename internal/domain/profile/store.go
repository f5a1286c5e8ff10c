package profile

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

const profileColumns = `
  p.account_id, p.first_name, p.last_name, p.phone, p.address,
  p.designation, p.department, p.joining_date, p.base_salary,
  p.profile_picture, p.documents, p.updated_at`

func scanProfile(row pgx.Row, extra ...any) (Profile, error) {
	var p Profile
	dest := []any{
		&p.AccountID, &p.PersonalDetails.FirstName, &p.PersonalDetails.LastName,
		&p.PersonalDetails.Phone, &p.PersonalDetails.Address,
		&p.JobDetails.Designation, &p.JobDetails.Department, &p.JobDetails.JoiningDate,
		&p.SalaryStructure.BaseSalary, &p.ProfilePicture, &p.Documents, &p.UpdatedAt,
	}
	err := row.Scan(append(dest, extra...)...)
	if p.Documents == nil {
		p.Documents = []string{}
	}
	return p, err
}

func (s *Store) Get(ctx context.Context, accountID string) (Profile, error) {
	p, err := scanProfile(s.DB.QueryRow(ctx, `SELECT`+profileColumns+` FROM profiles p WHERE p.account_id = $1`, accountID))
	if pgerr.IsNoRows(err) {
		return Profile{}, ErrProfileNotFound
	}
	return p, err
}

func (s *Store) Apply(ctx context.Context, accountID string, upd Update) (Profile, error) {
	p, err := scanProfile(s.DB.QueryRow(ctx, `
    UPDATE profiles p SET
      first_name = COALESCE($2::text, first_name),
      last_name = COALESCE($3::text, last_name),
      phone = COALESCE($4::text, phone),
      address = COALESCE($5::text, address),
      designation = COALESCE($6::text, designation),
      department = COALESCE($7::text, department),
      joining_date = COALESCE($8::date, joining_date),
      base_salary = COALESCE($9::text, base_salary),
      profile_picture = COALESCE($10::text, profile_picture),
      documents = COALESCE($11::text[], documents),
      updated_at = now()
    WHERE p.account_id = $1
    RETURNING`+profileColumns,
		accountID, upd.FirstName, upd.LastName, upd.Phone, upd.Address, upd.Designation,
		upd.Department, upd.JoiningDate, upd.BaseSalary, upd.ProfilePicture, upd.Documents,
	))
	if pgerr.IsNoRows(err) {
		return Profile{}, ErrProfileNotFound
	}
	return p, err
}

func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+profileColumns+`, a.employee_id, a.name, a.email, a.role
    FROM profiles p
    JOIN accounts a ON a.id = p.account_id
    ORDER BY a.name, a.employee_id
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Employee{}
	for rows.Next() {
		var e Employee
		e.Profile, err = scanProfile(rows, &e.EmployeeID, &e.Name, &e.Email, &e.Role)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
