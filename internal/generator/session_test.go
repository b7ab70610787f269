package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketai-api/internal/prompt"
	apperrors "marketai-api/pkg/errors"
)

type stubCompleter struct {
	prompts []string
	outputs []string
	err     error
	block   chan struct{}
	entered chan struct{}
}

func (s *stubCompleter) Complete(_ context.Context, p string) (string, error) {
	s.prompts = append(s.prompts, p)
	if s.entered != nil {
		close(s.entered)
	}
	if s.block != nil {
		<-s.block
	}
	if s.err != nil {
		return "", s.err
	}
	out := s.outputs[0]
	if len(s.outputs) > 1 {
		s.outputs = s.outputs[1:]
	}
	return out, nil
}

type memClipboard struct {
	text string
	err  error
}

func (m *memClipboard) WriteAll(text string) error {
	if m.err != nil {
		return m.err
	}
	m.text = text
	return nil
}

func TestSessionGenerateStoresContent(t *testing.T) {
	stub := &stubCompleter{outputs: []string{"Wake up happy."}}
	s := NewSession(stub)

	out, err := s.Generate(context.Background(), "slogan", "Organic coffee")
	require.NoError(t, err)

	assert.Equal(t, "Wake up happy.", out)
	assert.Equal(t, "Wake up happy.", s.Current())
	require.Len(t, stub.prompts, 1)
	assert.Equal(t, prompt.Build("slogan", "Organic coffee"), stub.prompts[0])
}

func TestSessionRejectsEmptyDescription(t *testing.T) {
	stub := &stubCompleter{outputs: []string{"x"}}
	s := NewSession(stub)

	_, err := s.Generate(context.Background(), "slogan", "  \n\t")
	assert.ErrorIs(t, err, apperrors.ErrEmptyDescription)
	assert.Empty(t, stub.prompts)
}

func TestSessionRegenerate(t *testing.T) {
	stub := &stubCompleter{outputs: []string{"first", "second"}}
	s := NewSession(stub)

	_, err := s.Regenerate(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNoPrevious)

	_, err = s.Generate(context.Background(), "hashtags", "Yoga mats")
	require.NoError(t, err)

	out, err := s.Regenerate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "second", out)
	require.Len(t, stub.prompts, 2)
	assert.Equal(t, stub.prompts[0], stub.prompts[1])
}

func TestSessionFailureKeepsPreviousContent(t *testing.T) {
	stub := &stubCompleter{outputs: []string{"kept"}}
	s := NewSession(stub)
	_, err := s.Generate(context.Background(), "email", "Launch")
	require.NoError(t, err)

	stub.err = errors.New("boom")
	_, err = s.Generate(context.Background(), "email", "Launch")
	require.Error(t, err)
	assert.Equal(t, "kept", s.Current())
}

func TestSessionBusyGuard(t *testing.T) {
	stub := &stubCompleter{
		outputs: []string{"done"},
		block:   make(chan struct{}),
		entered: make(chan struct{}),
	}
	s := NewSession(stub)

	errCh := make(chan error, 1)
	go func() {
		_, err := s.Generate(context.Background(), "slogan", "one")
		errCh <- err
	}()
	<-stub.entered

	_, err := s.Generate(context.Background(), "slogan", "two")
	assert.ErrorIs(t, err, apperrors.ErrBusy)

	close(stub.block)
	require.NoError(t, <-errCh)
	assert.Equal(t, "done", s.Current())
}

func TestSessionCopy(t *testing.T) {
	cb := &memClipboard{}
	s := NewSession(&stubCompleter{outputs: []string{"Copy me"}})

	assert.ErrorIs(t, s.Copy(cb), apperrors.ErrNothingToCopy)

	_, err := s.Generate(context.Background(), "ad-copy", "Shoes")
	require.NoError(t, err)
	require.NoError(t, s.Copy(cb))
	assert.Equal(t, "Copy me", cb.text)

	cb.err = errors.New("no display")
	assert.Error(t, s.Copy(cb))
}
