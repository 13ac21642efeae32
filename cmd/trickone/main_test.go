package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/njchilds90/trickone/symbolic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	a := &app{}
	root := newRootCmd(a)
	t.Cleanup(a.close)
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	noEnv := filepath.Join(t.TempDir(), "none.env")
	root.SetArgs(append(args, "--env-file", noEnv))
	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestGenerateCommand_JSON(t *testing.T) {
	out, err := run(t, "generate", "--level", "2", "--count", "3", "--json")
	require.NoError(t, err)

	keys := map[string]bool{}
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		var line generateLine
		require.NoError(t, json.Unmarshal(sc.Bytes(), &line))
		assert.Equal(t, 2, line.Level)
		assert.NotEmpty(t, line.Expr)
		assert.NotEmpty(t, line.LaTeX)
		keys[line.Key] = true
	}
	assert.Len(t, keys, 3)
}

func TestGenerateCommand_Text(t *testing.T) {
	out, err := run(t, "generate", "-l", "1")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.NotEmpty(t, lines[0])
}

func TestGenerateCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "bad level", args: []string{"generate", "--level", "9"}},
		{name: "bad count", args: []string{"generate", "--count", "0"}},
		{name: "missing config", args: []string{"generate", "--config", "/nonexistent/trickone.yaml"}},
		{name: "extra args", args: []string{"generate", "oops"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestGenerateCommand_ConfigEnv(t *testing.T) {
	t.Setenv("TRICKONE_COEFFICIENT_LOW", "-9223372036854775808")
	_, err := run(t, "generate")
	assert.Error(t, err)
}

func TestGenerateCommand_ExportsTraces(t *testing.T) {
	var exports atomic.Int32
	collector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/traces" {
			exports.Add(1)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer collector.Close()
	t.Setenv("TRICKONE_OTEL_ENDPOINT", collector.URL+"/v1/traces")

	a := &app{}
	root := newRootCmd(a)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"generate", "--level", "3", "--env-file", filepath.Join(t.TempDir(), "none.env")})
	require.NoError(t, root.ExecuteContext(context.Background()))
	require.NotNil(t, a.shutdown)

	a.close()
	assert.Positive(t, exports.Load(), "spans should be flushed to the collector on close")
}

func TestVerifyCommand(t *testing.T) {
	one, err := symbolic.ToJSON(symbolic.Div(symbolic.X, symbolic.X))
	require.NoError(t, err)
	notOne, err := symbolic.ToJSON(symbolic.AddOf(symbolic.X, symbolic.N(1)))
	require.NoError(t, err)

	dir := t.TempDir()
	onePath := filepath.Join(dir, "one.json")
	require.NoError(t, os.WriteFile(onePath, []byte(one), 0o600))
	notOnePath := filepath.Join(dir, "not_one.json")
	require.NoError(t, os.WriteFile(notOnePath, []byte(notOne), 0o600))
	badPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte(`{"type":"matrix"}`), 0o600))

	out, err := run(t, "verify", onePath)
	require.NoError(t, err)
	assert.Contains(t, out, "= 1")

	_, err = run(t, "verify", notOnePath)
	assert.ErrorContains(t, err, "not 1")

	_, err = run(t, "verify", badPath)
	assert.Error(t, err)

	_, err = run(t, "verify", filepath.Join(dir, "absent.json"))
	assert.Error(t, err)
}
