package attendance

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

type Service struct {
	Store    StoreAPI
	Guard    Locker
	Location *time.Location
	Now      func() time.Time
}

func NewService(store StoreAPI, guard Locker, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{Store: store, Guard: guard, Location: loc, Now: time.Now}
}

func (s *Service) now() time.Time {
	return s.Now().In(s.Location)
}

func (s *Service) lock(ctx context.Context, key string) (func(), bool) {
	if s.Guard == nil {
		return func() {}, true
	}
	return s.Guard.Acquire(ctx, key)
}

// Day returns the calendar day offset days from today.
func (s *Service) Day(offset int) string {
	return s.now().AddDate(0, 0, offset).Format(dayLayout)
}

func (s *Service) CheckIn(ctx context.Context, accountID string) (Record, error) {
	now := s.now()
	day := now.Format(dayLayout)

	release, ok := s.lock(ctx, "attendance:"+accountID+":"+day+":in")
	if !ok {
		return Record{}, ErrAlreadyCheckedIn
	}
	defer release()

	if _, found, err := s.Store.FindByDay(ctx, accountID, day); err != nil {
		return Record{}, err
	} else if found {
		return Record{}, ErrAlreadyCheckedIn
	}

	display := now.Format(timeLayout)
	rec, err := s.Store.Insert(ctx, Record{
		AccountID: accountID,
		Date:      day,
		CheckIn:   &display,
		CheckInAt: &now,
		Status:    StatusPresent,
	})
	if errors.Is(err, ErrAlreadyCheckedIn) {
		slog.Warn("concurrent check-in rejected by unique index", "accountId", accountID, "day", day)
	}
	return rec, err
}

// CheckOut stamps today's record. Repeated check-outs overwrite the time.
func (s *Service) CheckOut(ctx context.Context, accountID string) (Record, error) {
	now := s.now()
	day := now.Format(dayLayout)

	release, ok := s.lock(ctx, "attendance:"+accountID+":"+day+":out")
	if !ok {
		return Record{}, ErrCheckOutBusy
	}
	defer release()

	return s.Store.SetCheckOut(ctx, accountID, day, now.Format(timeLayout), now)
}

func (s *Service) Today(ctx context.Context, accountID string) (Today, error) {
	rec, found, err := s.Store.FindByDay(ctx, accountID, s.Day(0))
	if err != nil {
		return Today{}, err
	}
	if !found {
		return Today{Status: StatusAbsent}, nil
	}
	return Today{Status: rec.Status, CheckIn: rec.CheckIn, CheckOut: rec.CheckOut}, nil
}

func (s *Service) History(ctx context.Context, accountID string) ([]Record, error) {
	return s.Store.History(ctx, accountID)
}

func (s *Service) AllForDay(ctx context.Context, day string) ([]DailyEntry, error) {
	return s.Store.ForDay(ctx, day)
}
