package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "PROCESSING", "COMPLETED", "CANCELLED"} {
		if _, err := ParseStatus(s); err != nil {
			t.Errorf("ParseStatus(%q) error = %v", s, err)
		}
	}
	for _, s := range []string{"", "pending", "SHIPPED"} {
		if _, err := ParseStatus(s); !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("ParseStatus(%q) error = %v, want %v", s, err, ErrInvalidStatus)
		}
	}
}

func TestOrderDeletable(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusPending, true},
		{StatusCancelled, true},
		{StatusProcessing, false},
		{StatusCompleted, false},
	}
	for _, tt := range tests {
		o := Order{Status: tt.status}
		if got := o.Deletable(); got != tt.want {
			t.Errorf("Deletable() with %s = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestDiscountWindowContains(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
	d := Discount{ValidFrom: from, ValidUntil: until}

	if !d.WindowContains(from) || !d.WindowContains(until) {
		t.Error("window bounds are inclusive")
	}
	if d.WindowContains(from.Add(-time.Second)) || d.WindowContains(until.Add(time.Second)) {
		t.Error("outside the window must not match")
	}
}

func TestDiscountExhausted(t *testing.T) {
	two := 2
	if (&Discount{UsedCount: 100}).Exhausted() {
		t.Error("no cap means never exhausted")
	}
	if (&Discount{MaxUses: &two, UsedCount: 1}).Exhausted() {
		t.Error("below the cap")
	}
	if !(&Discount{MaxUses: &two, UsedCount: 2}).Exhausted() {
		t.Error("at the cap")
	}
}
