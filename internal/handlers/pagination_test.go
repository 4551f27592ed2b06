package handlers

import (
	"errors"
	"testing"

	"parcelpro/internal/apperr"
)

func TestParsePaginationParamsDefaults(t *testing.T) {
	page, limit, err := parsePaginationParams("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page != 1 || limit != 20 {
		t.Fatalf("expected defaults 1/20, got %d/%d", page, limit)
	}
}

func TestParsePaginationParamsExplicit(t *testing.T) {
	page, limit, err := parsePaginationParams("2", "10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page != 2 || limit != 10 {
		t.Fatalf("expected 2/10, got %d/%d", page, limit)
	}
}

func TestParsePaginationParamsInvalid(t *testing.T) {
	for _, tc := range [][2]string{{"0", "10"}, {"-1", "10"}, {"x", "10"}, {"1", "0"}, {"1", "nope"}} {
		_, _, err := parsePaginationParams(tc[0], tc[1])
		if !errors.Is(err, apperr.Invalid) {
			t.Fatalf("expected Invalid for page=%q limit=%q, got %v", tc[0], tc[1], err)
		}
	}
}
