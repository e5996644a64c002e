package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestSQLOperation(t *testing.T) {
	tests := map[string]string{
		`SELECT * FROM "users"`:             "select",
		`  insert INTO "posts" (...)`:       "insert",
		`UPDATE "users" SET "first_name"=1`: "update",
		`DELETE FROM "posts" WHERE id = 1`:  "delete",
		`WITH x AS (SELECT 1) SELECT * x`:   "other",
		"":                                  "unknown",
	}
	for sql, want := range tests {
		assert.Equal(t, want, sqlOperation(sql), sql)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	beforeHit := testutil.ToFloat64(CacheLookups.WithLabelValues("user", "hit"))
	beforeMiss := testutil.ToFloat64(CacheLookups.WithLabelValues("post", "miss"))

	RecordCacheLookup("user:1", true)
	RecordCacheLookup("post:7", false)

	assert.Equal(t, beforeHit+1, testutil.ToFloat64(CacheLookups.WithLabelValues("user", "hit")))
	assert.Equal(t, beforeMiss+1, testutil.ToFloat64(CacheLookups.WithLabelValues("post", "miss")))
}

func TestRecordForm(t *testing.T) {
	before := testutil.ToFloat64(FormSubmissions.WithLabelValues("user_new", OutcomeInvalid))
	RecordForm("user_new", OutcomeInvalid)
	assert.Equal(t, before+1, testutil.ToFloat64(FormSubmissions.WithLabelValues("user_new", OutcomeInvalid)))
}

func TestObserveQuery(t *testing.T) {
	before := testutil.CollectAndCount(DatabaseQueryLatency)
	ObserveQuery(`ROLLBACK`, 3*time.Millisecond)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(DatabaseQueryLatency), before)
}

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{ServiceName: "blogly-test"})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))

	span, ctx := NewSpan(context.Background(), "test.span")
	assert.NotNil(t, ctx)
	span.SetError(errors.New("boom"))
	span.SetError(nil)
	span.End()
}

func TestInitTracing_UnknownExporter(t *testing.T) {
	_, err := InitTracing(TracingConfig{Enabled: true, Exporter: "zipkin"})
	assert.Error(t, err)
}

func TestNewSampler(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), newSampler(1).Description())
	assert.Contains(t, newSampler(0.25).Description(), "ParentBased")
}
