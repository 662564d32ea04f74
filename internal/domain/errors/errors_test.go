package errors

import (
	stdErrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"already exists", ErrAlreadyExists},
		{"not found", ErrNotFound},
		{"invalid credentials", ErrInvalidCredentials},
		{"invalid token", ErrInvalidToken},
		{"unauthorized", ErrUnauthorized},
		{"forbidden", ErrForbidden},
		{"invalid transition", ErrInvalidTransition},
		{"business rule", ErrBusinessRule},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
		})
	}
}

func TestTypedErrorsMatchSentinels(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		target  error
		message string
	}{
		{"not found", NotFound("order", 7), ErrNotFound, "order 7 not found"},
		{"rule violation", RuleViolation("table already booked for this slot"), ErrBusinessRule, "table already booked for this slot"},
		{
			"transition",
			&InvalidTransitionError{Operation: "approve", Actual: "prete", Expected: []string{"en_attente"}},
			ErrInvalidTransition,
			"approve: invalid action for status prete (expected en_attente)",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := fmt.Errorf("wrapped: %w", tc.err)
			if !stdErrors.Is(wrapped, tc.target) {
				t.Fatalf("expected %v to match %v", wrapped, tc.target)
			}
			if tc.err.Error() != tc.message {
				t.Fatalf("unexpected message %q", tc.err.Error())
			}
		})
	}

	if stdErrors.Is(NotFound("order", 1), ErrBusinessRule) {
		t.Fatal("not found must not match business rule")
	}
}

func TestInvalidTransitionListsEveryExpectedStatus(t *testing.T) {
	err := &InvalidTransitionError{Operation: "cancel", Actual: "payee", Expected: []string{"en_attente", "approuvee"}}
	if !strings.Contains(err.Error(), "en_attente or approuvee") {
		t.Fatalf("unexpected message %q", err.Error())
	}

	var target *InvalidTransitionError
	if !stdErrors.As(fmt.Errorf("ctx: %w", err), &target) || target.Actual != "payee" {
		t.Fatalf("expected errors.As to expose the actual status")
	}
}
