package relay

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketai-api/internal/domain/entity"
	"marketai-api/internal/infrastructure/upstream"
	apperrors "marketai-api/pkg/errors"
	"marketai-api/pkg/metrics"
)

type fakeForwarder struct {
	configured bool
	resp       *upstream.Response
	err        error
	calls      int
}

func (f *fakeForwarder) Configured() bool { return f.configured }
func (f *fakeForwarder) Model() string    { return "fake-model" }

func (f *fakeForwarder) ChatCompletion(_ context.Context, _ []entity.ChatMessage) (*upstream.Response, error) {
	f.calls++
	return f.resp, f.err
}

func TestRelayWithoutCredentialNeverForwards(t *testing.T) {
	f := &fakeForwarder{configured: false}
	_, err := NewService(f).Relay(context.Background(), []entity.ChatMessage{entity.UserMessage("hi")})

	assert.ErrorIs(t, err, apperrors.ErrCredentialMissing)
	assert.Zero(t, f.calls)
}

func TestRelayReturnsUpstreamResponseUnchanged(t *testing.T) {
	body := []byte(`{"choices":[{"message":{"content":"x"}}],"usage":{"prompt_tokens":12,"completion_tokens":3}}`)
	f := &fakeForwarder{configured: true, resp: &upstream.Response{StatusCode: http.StatusOK, Body: body}}

	before := testutil.ToFloat64(metrics.UpstreamTokensUsed.WithLabelValues("fake-model", "prompt"))
	resp, err := NewService(f).Relay(context.Background(), []entity.ChatMessage{entity.UserMessage("hi")})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, body, resp.Body)
	assert.InDelta(t, before+12, testutil.ToFloat64(metrics.UpstreamTokensUsed.WithLabelValues("fake-model", "prompt")), 1e-9)
}

func TestRelayPassesUpstreamApplicationErrors(t *testing.T) {
	body := []byte(`{"error":{"message":"quota exceeded"}}`)
	f := &fakeForwarder{configured: true, resp: &upstream.Response{StatusCode: http.StatusTooManyRequests, Body: body}}

	resp, err := NewService(f).Relay(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, body, resp.Body)
}

func TestRelaySurfacesTransportErrors(t *testing.T) {
	f := &fakeForwarder{configured: true, err: apperrors.ErrUpstreamUnavailable.WithError(errors.New("dns"))}
	_, err := NewService(f).Relay(context.Background(), nil)
	assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
	assert.Equal(t, 1, f.calls)
}

func TestReady(t *testing.T) {
	assert.False(t, NewService(nil).Ready())
	assert.True(t, NewService(&fakeForwarder{configured: true}).Ready())
}
