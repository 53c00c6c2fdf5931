package extract

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/dev16mehta/ToolBelt-AI/pkg/models"
)

// classified wraps a provider and maps transport-level failures onto the
// package sentinels so callers can switch on errors.Is regardless of which
// provider is configured.
type classified struct {
	inner Extractor
}

func (c *classified) Name() string { return c.inner.Name() }

func (c *classified) Extract(ctx context.Context, description string) (models.JobRecord, error) {
	record, err := c.inner.Extract(ctx, description)
	if err != nil {
		return nil, classifyError(err)
	}
	return record, nil
}

func classifyError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidResponse):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %v", ErrExtractionTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return fmt.Errorf("%w: %v", ErrExtractionTimeout, err)
		}
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	return fmt.Errorf("%w: %v", ErrExtractionFailed, err)
}
