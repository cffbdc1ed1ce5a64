package testutil

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/stretchr/testify/require"
)

var (
	rsaKeysMu sync.Mutex
	rsaKeys   = map[int]*rsa.PrivateKey{}
)

// RSAKey returns an RSA private key of the given size in bits. Keys are
// generated once per size and shared between tests, since 4096 bit keys take
// a while to generate.
func RSAKey(t testing.TB, bits int) *rsa.PrivateKey {
	t.Helper()

	rsaKeysMu.Lock()
	defer rsaKeysMu.Unlock()

	if key, ok := rsaKeys[bits]; ok {
		return key
	}

	key, err := rsa.GenerateKey(rand.Reader, bits)
	require.NoError(t, err)

	rsaKeys[bits] = key
	return key
}

// PrivateJWK returns key as a JWK JSON object with the given kid, decoded
// into a map so that tests can add, change or remove members.
func PrivateJWK(t testing.TB, key *rsa.PrivateKey, kid string) map[string]any {
	t.Helper()

	jwkKey, err := jwk.Import(key)
	require.NoError(t, err)

	if kid != "" {
		require.NoError(t, jwkKey.Set(jwk.KeyIDKey, kid))
	}

	b, err := json.Marshal(jwkKey)
	require.NoError(t, err)

	var members map[string]any
	require.NoError(t, json.Unmarshal(b, &members))
	return members
}

// WriteFile writes contents to a file in a temporary directory and returns its
// path. Maps and slices are encoded as JSON, strings and byte slices are
// written as-is.
func WriteFile(t testing.TB, name string, contents any) string {
	t.Helper()

	var data []byte
	switch c := contents.(type) {
	case string:
		data = []byte(c)
	case []byte:
		data = c
	default:
		var err error
		data, err = json.Marshal(c)
		require.NoError(t, err)
	}

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

// WriteJWKFile writes key as a private JWK with the given kid and returns the
// file path.
func WriteJWKFile(t testing.TB, key *rsa.PrivateKey, kid string) string {
	t.Helper()

	return WriteFile(t, "key.json", PrivateJWK(t, key, kid))
}
