package docsearch

import (
	"context"
	"errors"
	"net"

	"github.com/okondratev/devdocs-qa/internal/infrastructure/resilience"
)

// Search failures are recoverable at the pipeline level (the domain is simply
// skipped), so only transport-level errors are worth a retry here.
func classifySearchError(err error) resilience.Verdict {
	if err == nil {
		return resilience.Verdict{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.Verdict{Retryable: false, RecordFailure: false}
	}
	if resilience.IsCircuitOpen(err) {
		return resilience.Verdict{Retryable: true, RecordFailure: true}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return resilience.Verdict{Retryable: true, RecordFailure: true}
	}
	return resilience.Verdict{Retryable: false, RecordFailure: true}
}
