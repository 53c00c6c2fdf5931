package extract

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dev16mehta/ToolBelt-AI/internal/extract/prompt"
	"github.com/dev16mehta/ToolBelt-AI/pkg/models"
)

type fakeNetError struct{ timeout bool }

func (e *fakeNetError) Error() string   { return "fake net error" }
func (e *fakeNetError) Timeout() bool   { return e.timeout }
func (e *fakeNetError) Temporary() bool { return false }

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "deadline exceeded", err: fmt.Errorf("calling provider: %w", context.DeadlineExceeded), want: ErrExtractionTimeout},
		{name: "canceled", err: context.Canceled, want: ErrExtractionTimeout},
		{name: "net timeout", err: fmt.Errorf("wrap: %w", &fakeNetError{timeout: true}), want: ErrExtractionTimeout},
		{name: "net unreachable", err: fmt.Errorf("wrap: %w", &fakeNetError{}), want: ErrProviderUnavailable},
		{name: "invalid response passes through", err: fmt.Errorf("%w: garbage", prompt.ErrInvalidResponse), want: ErrInvalidResponse},
		{name: "anything else", err: errors.New("boom"), want: ErrExtractionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyError(tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("classifyError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestClassifiedWrapsExtract(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	<-ctx.Done()

	inner := extractFunc(func(ctx context.Context, _ string) error { return ctx.Err() })
	c := &classified{inner: inner}

	if _, err := c.Extract(ctx, "two toilets"); !errors.Is(err, ErrExtractionTimeout) {
		t.Errorf("expected ErrExtractionTimeout, got %v", err)
	}
}

type extractFunc func(ctx context.Context, description string) error

func (f extractFunc) Name() string { return "fake" }

func (f extractFunc) Extract(ctx context.Context, description string) (models.JobRecord, error) {
	return nil, f(ctx, description)
}
