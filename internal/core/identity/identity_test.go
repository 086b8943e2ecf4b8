package identity

import (
	"errors"
	"testing"
)

func TestNewCaller(t *testing.T) {
	t.Parallel()

	caller, err := NewCaller(RoleManager, "Main", "")
	if err != nil {
		t.Fatalf("NewCaller returned error: %v", err)
	}
	if caller.Role != RoleManager || caller.Branch != "Main" {
		t.Fatalf("unexpected caller: %+v", caller)
	}

	if _, err := NewCaller(Role("intern"), "", ""); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}

func TestScopeValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		caller   Caller
		expected string
	}{
		{Caller{Role: RoleAdmin}, ""},
		{Caller{Role: RoleManager, Branch: "Main"}, "Main"},
		{Caller{Role: RoleDistrictManager, District: "East"}, "East"},
	}

	for _, tc := range cases {
		if got := tc.caller.ScopeValue(); got != tc.expected {
			t.Fatalf("role %s: expected scope %q, got %q", tc.caller.Role, tc.expected, got)
		}
	}
}
