package timesheet

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
)

func TestRejectRequiresReason(t *testing.T) {
	svc := New(nil, nil, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	tests := []struct {
		name   string
		reason string
	}{
		{"empty reason", ""},
		{"whitespace only reason", "   \t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Reject(context.Background(), uuid.New(), uuid.New(), tt.reason)
			if !errors.Is(err, ErrEmptyReason) {
				t.Errorf("expected ErrEmptyReason, got %v", err)
			}
		})
	}
}
