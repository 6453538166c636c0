// internal/domain/trend/errors.go

package trend

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two failure levels: one upstream provider failing,
// and an aggregation aborted because a required provider failed.
var (
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrAggregationFailed = errors.New("aggregation failed")
)

// SourceError wraps a provider failure with the source that raised it
type SourceError struct {
	Source SourceTag
	Err    error
}

// NewSourceError wraps err as a SourceError for tag
func NewSourceError(tag SourceTag, err error) *SourceError {
	return &SourceError{Source: tag, Err: err}
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s source unavailable: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

func (e *SourceError) Is(target error) bool { return target == ErrSourceUnavailable }

// AggregationError carries the source failure that aborted an aggregation.
// It unwraps to the originating SourceError so callers can inspect both
// levels with errors.Is and errors.As.
type AggregationError struct {
	Source SourceTag
	Err    error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregation failed: %v", e.Err)
}

func (e *AggregationError) Unwrap() error { return e.Err }

func (e *AggregationError) Is(target error) bool { return target == ErrAggregationFailed }
