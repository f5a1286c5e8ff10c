package leave

import (
	"context"
	"strings"

	"hrms/internal/platform/sanitize"
)

type Service struct {
	Store StoreAPI
	Guard Locker
}

func NewService(store StoreAPI, guard Locker) *Service {
	return &Service{Store: store, Guard: guard}
}

// Apply files a Pending request after checking its range and overlap with the
// applicant's other Pending or Approved requests.
func (s *Service) Apply(ctx context.Context, in ApplyInput) (Request, error) {
	if !ValidType(in.LeaveType) {
		return Request{}, ErrInvalidType
	}
	if _, err := CalculateDays(in.StartDate, in.EndDate); err != nil {
		return Request{}, ErrInvalidRange
	}
	in.Reason = sanitize.Text(in.Reason)
	if strings.TrimSpace(in.Reason) == "" {
		return Request{}, ErrReasonRequired
	}

	if s.Guard != nil {
		release, ok := s.Guard.Acquire(ctx, "leave:"+in.AccountID)
		if !ok {
			return Request{}, ErrDuplicateSubmit
		}
		defer release()
	}

	overlap, err := s.Store.HasOverlap(ctx, in.AccountID, in.StartDate, in.EndDate)
	if err != nil {
		return Request{}, err
	}
	if overlap {
		return Request{}, ErrOverlap
	}
	return s.Store.Create(ctx, in)
}

func (s *Service) ListMine(ctx context.Context, accountID string) ([]Request, error) {
	return s.Store.ListByAccount(ctx, accountID)
}

func (s *Service) ListAll(ctx context.Context) ([]Entry, error) {
	return s.Store.ListAll(ctx)
}

// SetStatus records an HR decision. A request is decided once.
func (s *Service) SetStatus(ctx context.Context, id, status, comments, deciderID string) (Request, error) {
	if !ValidDecision(status) {
		return Request{}, ErrInvalidDecision
	}
	current, err := s.Store.Get(ctx, id)
	if err != nil {
		return Request{}, err
	}
	if current.AccountID == deciderID {
		return Request{}, ErrSelfDecision
	}
	if current.Status != StatusPending {
		return Request{}, ErrAlreadyDecided
	}
	return s.Store.Decide(ctx, id, status, sanitize.Text(comments), deciderID)
}
