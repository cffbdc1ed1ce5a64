package cmd

import (
	"bytes"
	"context"
	"encoding/base64"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jetstack/jwsign/pkg/testutil"
)

// runJwsign runs Execute in a child process, so that exit codes and the
// global logging configuration can be tested. Arguments are passed one per
// line in GO_CHILD_ARGS.
func runJwsign(t *testing.T, stdin []byte, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()

	ctx, cancel := context.WithTimeout(t.Context(), time.Second*30)
	defer cancel()
	cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=^TestChildProcess$")
	var (
		stdoutBuf bytes.Buffer
		stderrBuf bytes.Buffer
	)
	cmd.Stdin = bytes.NewReader(stdin)
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	cmd.Env = append(
		os.Environ(),
		"GO_CHILD=true",
		"GO_CHILD_ARGS="+strings.Join(args, "\n"),
	)
	err := cmd.Run()

	t.Logf("ARGS\n%q\n", args)
	t.Logf("STDOUT\n%s\n", stdoutBuf.String())
	t.Logf("STDERR\n%s\n", stderrBuf.String())

	if err != nil {
		var exitErr *exec.ExitError
		require.ErrorAs(t, err, &exitErr, context.Cause(ctx))
		exitCode = exitErr.ExitCode()
	}

	return stdoutBuf.String(), stderrBuf.String(), exitCode
}

// TestChildProcess is the entry point of the child process started by
// runJwsign. It does nothing when run as part of the normal test suite.
func TestChildProcess(t *testing.T) {
	if _, found := os.LookupEnv("GO_CHILD"); !found {
		t.Skip("only runs as a child process")
	}

	os.Args = []string{"jwsign"}
	if args := os.Getenv("GO_CHILD_ARGS"); args != "" {
		os.Args = append(os.Args, strings.Split(args, "\n")...)
	}
	Execute()
	os.Exit(0)
}

func TestSign_Command(t *testing.T) {
	keyPath := testutil.WriteJWKFile(t, testutil.RSAKey(t, 2048), "test-key-id")

	stdout, stderr, exitCode := runJwsign(t, []byte("hello"), keyPath)
	require.Equal(t, 0, exitCode)
	assert.Empty(t, stderr)

	require.True(t, strings.HasSuffix(stdout, "\n"), "output should end with a newline")
	parts := strings.Split(strings.TrimSuffix(stdout, "\n"), ".")
	require.Len(t, parts, 3)

	header, err := base64.RawURLEncoding.DecodeString(parts[0])
	require.NoError(t, err)
	assert.Equal(t, `{"alg":"PS256","kid":"test-key-id"}`, string(header))

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	assert.Equal(t, "hello", string(payload))
}

func TestSign_Command_EmptyPayload(t *testing.T) {
	keyPath := testutil.WriteJWKFile(t, testutil.RSAKey(t, 2048), "test-key-id")

	stdout, _, exitCode := runJwsign(t, nil, keyPath)
	require.Equal(t, 0, exitCode)

	parts := strings.Split(strings.TrimSuffix(stdout, "\n"), ".")
	require.Len(t, parts, 3)
	assert.Empty(t, parts[1])
}

func TestSignVerify_Command_RoundTrip(t *testing.T) {
	keyPath := testutil.WriteJWKFile(t, testutil.RSAKey(t, 2048), "test-key-id")
	payload := []byte{0x00, 0xff, 0x10, '\n', 0x80}

	signed, _, exitCode := runJwsign(t, payload, keyPath)
	require.Equal(t, 0, exitCode)

	verified, stderr, exitCode := runJwsign(t, []byte(signed), "verify", keyPath)
	require.Equal(t, 0, exitCode)
	assert.Empty(t, stderr)
	assert.Equal(t, string(payload), verified)
}

func TestCommand_Errors(t *testing.T) {
	validKey := testutil.WriteJWKFile(t, testutil.RSAKey(t, 2048), "test-key-id")

	tests := []struct {
		name           string
		args           []string
		stdin          string
		stderrContains string
	}{
		{
			name:           "missing keyfile",
			args:           nil,
			stderrContains: "missing keyfile",
		},
		{
			name:           "too many arguments",
			args:           []string{validKey, validKey},
			stderrContains: "expected a single keyfile argument, got 2",
		},
		{
			name:           "keyfile does not exist",
			args:           []string{"/nonexistent/key.json"},
			stderrContains: "failed to read keyfile",
		},
		{
			name:           "keyfile is not JSON",
			args:           []string{testutil.WriteFile(t, "key.json", "not JSON")},
			stderrContains: "failed to read keyfile",
		},
		{
			name:           "malformed key",
			args:           []string{testutil.WriteFile(t, "key.json", `{"n": "not-base64url!!"}`)},
			stderrContains: "malformed key",
		},
		{
			name:           "unsupported key size",
			args:           []string{testutil.WriteJWKFile(t, testutil.RSAKey(t, 1024), "small-key")},
			stderrContains: "unsupported key size: modulus is 128 bytes",
		},
		{
			name:           "verify missing keyfile",
			args:           []string{"verify"},
			stderrContains: "missing keyfile",
		},
		{
			name:           "verify invalid JWS",
			args:           []string{"verify", validKey},
			stdin:          "not a JWS",
			stderrContains: "failed to verify signature",
		},
		{
			name:           "unknown flag",
			args:           []string{"--foo", validKey},
			stderrContains: "unknown flag: --foo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, exitCode := runJwsign(t, []byte(tt.stdin), tt.args...)
			assert.Equal(t, 1, exitCode)
			assert.Empty(t, stdout, "nothing should be written to stdout on error")
			assert.Contains(t, stderr, tt.stderrContains)
			assert.NotContains(t, stderr, "Usage:")
		})
	}
}

func TestVersion_Command(t *testing.T) {
	stdout, _, exitCode := runJwsign(t, nil, "version", "--verbose")
	require.Equal(t, 0, exitCode)
	assert.Contains(t, stdout, "jwsign version:  development")
	assert.Contains(t, stdout, "Go:")
}
