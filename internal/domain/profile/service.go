package profile

import "context"

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

func (s *Service) Get(ctx context.Context, accountID string) (Profile, error) {
	return s.Store.Get(ctx, accountID)
}

// Update applies the role-filtered subset of updates and returns the resulting profile.
// It also reports which fields were written so callers can audit them.
func (s *Service) Update(ctx context.Context, accountID, role string, updates map[string]any) (Profile, []string, error) {
	upd, err := ParseUpdate(role, updates)
	if err != nil {
		return Profile{}, nil, err
	}
	if upd.Empty() {
		p, err := s.Store.Get(ctx, accountID)
		return p, nil, err
	}
	p, err := s.Store.Apply(ctx, accountID, upd)
	if err != nil {
		return Profile{}, nil, err
	}
	return p, upd.Fields(), nil
}

func (s *Service) ListEmployees(ctx context.Context) ([]Employee, error) {
	return s.Store.ListEmployees(ctx)
}
