package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketai-api/internal/generator"
	"marketai-api/internal/prefs"
)

type fakeCompleter struct {
	out    string
	err    error
	called int
}

func (f *fakeCompleter) Complete(context.Context, string) (string, error) {
	f.called++
	return f.out, f.err
}

type bufClipboard struct{ text string }

func (b *bufClipboard) WriteAll(text string) error {
	b.text = text
	return nil
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out, &errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestGenerateThroughRelay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Fresh beans daily."}}]}`))
	}))
	defer srv.Close()

	prefsPath := filepath.Join(t.TempDir(), "prefs.yaml")
	out, _, err := execute(t, "", "--relay", srv.URL, "--prefs", prefsPath, "generate", "-c", "slogan", "Organic", "coffee")
	require.NoError(t, err)
	assert.Equal(t, "Fresh beans daily.\n", out)
}

func TestGenerateEmptyDescription(t *testing.T) {
	prefsPath := filepath.Join(t.TempDir(), "prefs.yaml")
	_, _, err := execute(t, "", "--relay", "http://127.0.0.1:1", "--prefs", prefsPath, "generate")
	require.Error(t, err)
	assert.Equal(t, "Please provide a product description.", userMessage(err))
}

func TestPrefsCommands(t *testing.T) {
	prefsPath := filepath.Join(t.TempDir(), "prefs.yaml")

	_, errOut, err := execute(t, "", "--prefs", prefsPath, "prefs", "set", "api_key", "sk-local")
	require.NoError(t, err)
	assert.Contains(t, errOut, "API Key saved successfully!")

	out, _, err := execute(t, "", "--prefs", prefsPath, "prefs", "get", "api_key")
	require.NoError(t, err)
	assert.Equal(t, "sk-local\n", out)

	_, _, err = execute(t, "", "--prefs", prefsPath, "prefs", "unset", "api_key")
	require.NoError(t, err)

	store, err := prefs.Open(prefsPath)
	require.NoError(t, err)
	assert.Empty(t, store.OverrideKey())
}

func TestCategoriesCommand(t *testing.T) {
	out, _, err := execute(t, "", "categories")
	require.NoError(t, err)
	assert.Contains(t, out, "product-description")
	assert.Contains(t, out, "PRODUCT DESCRIPTION")
	assert.Contains(t, out, "AD COPY")
}

func TestNewCompleterSelectsPath(t *testing.T) {
	opts := &options{relayURL: defaultRelayURL, upstreamURL: generator.DefaultDirectOptions().BaseURL}

	assert.IsType(t, &generator.RelayClient{}, newCompleter(opts, ""))
	assert.IsType(t, &generator.DirectClient{}, newCompleter(opts, "sk-local"))
}

func TestShellSession(t *testing.T) {
	fake := &fakeCompleter{out: "Great shoes."}
	clip := &bufClipboard{}
	var out bytes.Buffer

	input := strings.Join([]string{
		"/copy",
		"/again",
		"/type ad-copy",
		"/type banner",
		"Running shoes",
		"/again",
		"/copy",
		"/show",
		"/bogus",
		"/quit",
		"never reached",
	}, "\n")

	sh := newShell(generator.NewSession(fake), clip, strings.NewReader(input), &out)
	require.NoError(t, sh.run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Error: No content to copy!")
	assert.Contains(t, text, "Error: Nothing to regenerate yet.")
	assert.Contains(t, text, `Unknown content type "banner"`)
	assert.Contains(t, text, "[ad-copy]> ")
	assert.Contains(t, text, "Content copied to clipboard!")
	assert.Contains(t, text, "Unknown command /bogus")
	assert.Equal(t, 2, fake.called)
	assert.Equal(t, "Great shoes.", clip.text)
}

func TestShellEndsOnEOF(t *testing.T) {
	fake := &fakeCompleter{out: "x"}
	var out bytes.Buffer

	sh := newShell(generator.NewSession(fake), &bufClipboard{}, strings.NewReader("   \n"), &out)
	require.NoError(t, sh.run(context.Background()))

	assert.Contains(t, out.String(), "Error: Please provide a product description.")
	assert.Zero(t, fake.called)
}
