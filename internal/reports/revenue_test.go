package reports

import "testing"

func TestRevenueTotalEmptyIsZero(t *testing.T) {
	if got := revenueTotal(nil); got != 0 {
		t.Fatalf("expected 0 revenue over no payments, got %v", got)
	}
	if got := revenueTotal([]revenueRow{}); got != 0 {
		t.Fatalf("expected 0 revenue over empty result, got %v", got)
	}
}

func TestRevenueTotalSingleRow(t *testing.T) {
	if got := revenueTotal([]revenueRow{{Total: 1500}}); got != 1500 {
		t.Fatalf("expected 1500, got %v", got)
	}
}
