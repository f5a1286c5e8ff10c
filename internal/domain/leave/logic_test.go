package leave

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculateDays(t *testing.T) {
	days, err := CalculateDays(day(2025, 1, 10), day(2025, 1, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 1 {
		t.Fatalf("expected 1 day, got %v", days)
	}

	days, err = CalculateDays(day(2025, 1, 10), day(2025, 1, 12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 3 {
		t.Fatalf("expected 3 days, got %v", days)
	}
}

func TestCalculateDaysInvalid(t *testing.T) {
	_, err := CalculateDays(day(2025, 2, 10), day(2025, 2, 9))
	if err == nil {
		t.Fatal("expected error for invalid range")
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		aStart, aEnd   time.Time
		bStart, bEnd   time.Time
		wantOverlapped bool
	}{
		{"disjoint", day(2025, 3, 1), day(2025, 3, 2), day(2025, 3, 3), day(2025, 3, 4), false},
		{"touching edge", day(2025, 3, 1), day(2025, 3, 3), day(2025, 3, 3), day(2025, 3, 4), true},
		{"contained", day(2025, 3, 1), day(2025, 3, 10), day(2025, 3, 4), day(2025, 3, 5), true},
		{"reverse order", day(2025, 3, 5), day(2025, 3, 6), day(2025, 3, 1), day(2025, 3, 4), false},
	}
	for _, tc := range tests {
		if got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.wantOverlapped {
			t.Fatalf("%s: got %v", tc.name, got)
		}
	}
}

func TestValidTypeAndDecision(t *testing.T) {
	for _, lt := range []string{TypePaid, TypeSick, TypeUnpaid} {
		if !ValidType(lt) {
			t.Fatalf("expected %s valid", lt)
		}
	}
	if ValidType("Vacation") || ValidType("paid") {
		t.Fatal("unexpected valid type")
	}
	if !ValidDecision(StatusApproved) || !ValidDecision(StatusRejected) || ValidDecision(StatusPending) {
		t.Fatal("unexpected decision validity")
	}
}
