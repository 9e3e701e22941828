package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestTaskOutcome(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, OutcomeOK},
		{errors.New("chrome crashed"), OutcomeRetry},
		{fmt.Errorf("decode payload: %w", asynq.SkipRetry), OutcomeSkipRetry},
	}
	for _, tc := range cases {
		if got := TaskOutcome(tc.err); got != tc.want {
			t.Fatalf("TaskOutcome(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestAsynqMetricsMiddlewareSeparatesOutcomes(t *testing.T) {
	const taskType = "test:outcomes"
	results := []error{nil, errors.New("timeout"), fmt.Errorf("bad document: %w", asynq.SkipRetry)}

	for _, want := range results {
		handler := AsynqMetricsMiddleware()(asynq.HandlerFunc(func(context.Context, *asynq.Task) error {
			return want
		}))
		if err := handler.ProcessTask(context.Background(), asynq.NewTask(taskType, nil)); err != want {
			t.Fatalf("middleware must return the handler error unchanged, got %v", err)
		}
	}

	for _, outcome := range []string{OutcomeOK, OutcomeRetry, OutcomeSkipRetry} {
		if got := testutil.ToFloat64(taskProcessedTotal.WithLabelValues(taskType, outcome)); got != 1 {
			t.Fatalf("outcome %s: expected 1, got %v", outcome, got)
		}
	}
	if got := testutil.ToFloat64(taskInProgress.WithLabelValues(taskType)); got != 0 {
		t.Fatalf("in-progress gauge must return to zero, got %v", got)
	}
}
