package breakeven

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDefaultSolverOptions(t *testing.T) {
	opts := DefaultSolverOptions()

	if opts.MaxIterations != 64 {
		t.Errorf("Expected MaxIterations 64, got %d", opts.MaxIterations)
	}
	if !opts.MinimumRule.Fixed.Equal(decimal.NewFromInt(25)) {
		t.Errorf("Expected $25 minimum floor, got %s", opts.MinimumRule.Fixed)
	}
}

func TestSolverRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     SolverRequest
		wantErr bool
	}{
		{"target months", SolverRequest{Goal: GoalTargetMonths, TargetMonths: 12}, false},
		{"default goal", SolverRequest{TargetMonths: 6}, false},
		{"missing target", SolverRequest{Goal: GoalTargetMonths}, true},
		{"interest cap", SolverRequest{Goal: GoalMaxInterest, MaxInterest: decimal.NewFromInt(100)}, false},
		{"zero interest cap", SolverRequest{Goal: GoalMaxInterest}, false},
		{"negative interest cap", SolverRequest{Goal: GoalMaxInterest, MaxInterest: decimal.NewFromInt(-5)}, true},
		{"unknown goal", SolverRequest{Goal: "cheapest"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSolverError(t *testing.T) {
	err := &SolverError{Operation: "solve", Message: "failed"}
	if err.Error() != "solve: failed" {
		t.Errorf("Unexpected message %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Error("Expected nil cause")
	}

	cause := errors.New("boom")
	wrapped := &SolverError{Operation: "solve", Message: "failed", Cause: cause}
	if wrapped.Error() != "solve: failed: boom" {
		t.Errorf("Unexpected message %q", wrapped.Error())
	}
	if !errors.Is(wrapped, cause) {
		t.Error("Expected wrapped cause to match")
	}
}
