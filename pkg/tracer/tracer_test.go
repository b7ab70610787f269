package tracer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartRecordsSpan(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	shutdown, err := InitWithProcessor(Config{ServiceName: "test", SampleRate: 1}, rec)
	require.NoError(t, err)
	defer func() { _ = shutdown(context.Background()) }()

	ctx, span := Start(context.Background(), "upstream.chat_completion")
	assert.NotEmpty(t, TraceID(ctx))
	assert.NotEmpty(t, SpanID(ctx))
	Fail(span, errors.New("dial failed"))
	span.End()

	ended := rec.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "upstream.chat_completion", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
}

func TestDisabledInitIsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{Enabled: false})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.Empty(t, TraceID(context.Background()))
}

func TestSampler(t *testing.T) {
	assert.Equal(t, "AlwaysOnSampler", sampler(1).Description())
	assert.Equal(t, "AlwaysOffSampler", sampler(0).Description())
}
