package llm

import (
	"context"
	"time"

	"github.com/MikeSquared-Agency/triage/internal/metrics"
)

// Instrumented records latency and outcome of every call.
type Instrumented struct {
	next Completer
}

func NewInstrumented(next Completer) *Instrumented {
	return &Instrumented{next: next}
}

func (i *Instrumented) Complete(ctx context.Context, req Request) (string, error) {
	start := time.Now()
	out, err := i.next.Complete(ctx, req)
	metrics.RecordInference(req.Task, err, time.Since(start))
	return out, err
}
