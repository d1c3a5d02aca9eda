package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/sail"
	"github.com/aretw0/sail/pkg/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics()
	ctx := context.Background()

	pg := sail.New(ctx, `a_textField({saveInto: "n"})`, sail.WithLifecycleHooks(m.Hooks()))
	_, err := pg.Input(ctx, "n", "v")
	require.NoError(t, err)
	pg.Edit(ctx, `broken(`)
	pg.Submit(ctx)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Cycles.WithLabelValues(observability.OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Cycles.WithLabelValues(observability.OutcomeFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StateChanges))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submits))
	assert.Equal(t, 1, testutil.CollectAndCount(m.CycleDuration))
}

func TestMetrics_SessionsAndHandler(t *testing.T) {
	m := observability.NewMetrics()
	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Sessions))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "sail_sessions 1")
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	pg := sail.New(ctx, `nope`, sail.WithSessionID("s1"), sail.WithLifecycleHooks(observability.LoggingHooks(logger)))
	pg.Submit(ctx)

	out := buf.String()
	assert.Contains(t, out, "msg=cycle_failure")
	assert.Contains(t, out, "session_id=s1")
	assert.Contains(t, out, "msg=submit")
}
