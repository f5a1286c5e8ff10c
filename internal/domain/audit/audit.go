package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hrms/internal/platform/querier"
)

const (
	ActionEmployeeCreated  = "employee.created"
	ActionProfileUpdated   = "profile.updated"
	ActionLeaveDecided     = "leave.decided"
	ActionPayrollGenerated = "payroll.generated"
	ActionPayrollPaid      = "payroll.paid"
)

const (
	EntityAccount = "account"
	EntityProfile = "profile"
	EntityLeave   = "leave_request"
	EntityPayroll = "payroll_record"
)

type Event struct {
	ID         string          `json:"id"`
	ActorID    *string         `json:"actorId"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	RequestID  string          `json:"requestId"`
	IP         string          `json:"ip"`
	CreatedAt  time.Time       `json:"createdAt"`
	Details    json.RawMessage `json:"details,omitempty"`
}

// Entry is one mutation to record.
type Entry struct {
	ActorID    string
	Action     string
	EntityType string
	EntityID   string
	RequestID  string
	IP         string
	Details    any
}

type Filter struct {
	Action     string
	EntityType string
	ActorID    string
}

type Service struct {
	DB querier.Querier
}

func New(db querier.Querier) *Service {
	return &Service{DB: db}
}

func (s *Service) Record(ctx context.Context, e Entry) error {
	var details []byte
	if e.Details != nil {
		payload, err := json.Marshal(e.Details)
		if err != nil {
			return err
		}
		details = payload
	}

	_, err := s.DB.Exec(ctx, `
    INSERT INTO audit_events (actor_id, action, entity_type, entity_id, details, request_id, ip)
    VALUES (NULLIF($1, '')::uuid, $2, $3, $4, $5, $6, $7)
  `, e.ActorID, e.Action, e.EntityType, e.EntityID, details, e.RequestID, e.IP)
	return err
}

func (s *Service) Count(ctx context.Context, filter Filter) (int, error) {
	query, args := buildBaseQuery("SELECT COUNT(1)", filter)
	var total int
	if err := s.DB.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Service) List(ctx context.Context, filter Filter, limit, offset int) ([]Event, error) {
	query, args := buildBaseQuery("SELECT id, actor_id::text, action, entity_type, entity_id, request_id, ip, created_at, details", filter)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Event{}
	for rows.Next() {
		var evt Event
		if err := rows.Scan(&evt.ID, &evt.ActorID, &evt.Action, &evt.EntityType, &evt.EntityID, &evt.RequestID, &evt.IP, &evt.CreatedAt, &evt.Details); err != nil {
			return nil, err
		}
		out = append(out, evt)
	}
	return out, rows.Err()
}

func buildBaseQuery(prefix string, filter Filter) (string, []any) {
	query := prefix + " FROM audit_events WHERE 1 = 1"
	var args []any
	if filter.Action != "" {
		args = append(args, filter.Action)
		query += fmt.Sprintf(" AND action = $%d", len(args))
	}
	if filter.EntityType != "" {
		args = append(args, filter.EntityType)
		query += fmt.Sprintf(" AND entity_type = $%d", len(args))
	}
	if filter.ActorID != "" {
		args = append(args, filter.ActorID)
		query += fmt.Sprintf(" AND actor_id::text = $%d", len(args))
	}
	return query, args
}
