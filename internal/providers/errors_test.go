package providers

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestRateLimitErrorString(t *testing.T) {
	err := &RateLimitError{
		Provider:   "p",
		StatusCode: 429,
		Message:    "rate limited",
	}
	if got := err.Error(); got == "" || got == "rate limited" {
		t.Fatalf("expected status in error string, got %q", got)
	}

	rl, ok := AsRateLimitError(fmt.Errorf("wrapped: %w", err))
	if !ok || rl == nil {
		t.Fatalf("expected to unwrap rate limit error")
	}

	noStatus := &RateLimitError{}
	if got := noStatus.Error(); got == "" {
		t.Fatalf("expected fallback message")
	}
}

func TestStatusErrorString(t *testing.T) {
	err := &StatusError{Provider: "espn", StatusCode: 500, Body: "oops"}
	if got := err.Error(); got != "espn: unexpected status 500: oops" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := (&StatusError{Provider: "espn", StatusCode: 502}).Error(); got != "espn: unexpected status 502" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestRetryable(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{ErrNotFound, false},
		{fmt.Errorf("espn: %w", ErrUnsupported), false},
		{context.Canceled, false},
		{&StatusError{StatusCode: 400}, false},
		{&StatusError{StatusCode: 503}, true},
		{&RateLimitError{StatusCode: 429}, true},
		{errors.New("connection reset"), true},
	}
	for _, tc := range cases {
		if got := Retryable(tc.err); got != tc.want {
			t.Fatalf("Retryable(%v) expected %v got %v", tc.err, tc.want, got)
		}
	}
}
