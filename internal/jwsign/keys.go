package jwsign

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/lestrrat-go/jwx/v3/jwk"
	"k8s.io/klog/v2"

	"github.com/jetstack/jwsign/pkg/logs"
)

// SigningKey is an imported RSA private key that can only be used to sign.
type SigningKey struct {
	keyID     string
	algorithm Algorithm
	key       *rsa.PrivateKey
}

// KeyID returns the "kid" of the JWK the key was loaded from.
func (k *SigningKey) KeyID() string {
	return k.keyID
}

// Algorithm returns the algorithm selected for the key's modulus size.
func (k *SigningKey) Algorithm() Algorithm {
	return k.algorithm
}

// VerificationKey returns the public half of the key.
func (k *SigningKey) VerificationKey() *VerificationKey {
	return &VerificationKey{
		keyID:     k.keyID,
		algorithm: k.algorithm,
		key:       &k.key.PublicKey,
	}
}

// VerificationKey is an RSA public key that can only be used to verify.
type VerificationKey struct {
	keyID     string
	algorithm Algorithm
	key       *rsa.PublicKey
}

// KeyID returns the "kid" of the JWK the key was derived from.
func (k *VerificationKey) KeyID() string {
	return k.keyID
}

// Algorithm returns the algorithm signatures are expected to use.
func (k *VerificationKey) Algorithm() Algorithm {
	return k.algorithm
}

// LoadSigningKeyFile reads a JWK from path and imports it with ParseSigningKey.
func LoadSigningKeyFile(ctx context.Context, path string) (*SigningKey, error) {
	if path == "" {
		return nil, ErrMissingKeyfile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyFile, err)
	}

	klog.FromContext(ctx).WithName("jwsign").V(logs.Debug).Info("read keyfile", "path", path, "bytes", len(data))

	return ParseSigningKey(ctx, data)
}

// ParseSigningKey imports an RSA private key in JWK format for signing.
//
// The steps run in a fixed order and each has its own error: the document must be a JSON object
// (ErrKeyFile), "n" and "kid" must be present and well formed (ErrMalformedKey), the modulus must
// have a supported size (ErrUnsupportedKeySize) and finally the key material must be a valid RSA
// private key usable for signing with the selected algorithm (ErrKeyImport).
func ParseSigningKey(ctx context.Context, data []byte) (*SigningKey, error) {
	logger := klog.FromContext(ctx).WithName("jwsign")

	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyFile, err)
	}

	n, err := stringMember(members, "n")
	if err != nil {
		return nil, err
	}

	modulus, err := decodeBase64URL(n)
	if err != nil {
		return nil, fmt.Errorf(`%w: "n" is not valid base64url: %w`, ErrMalformedKey, err)
	}

	kid, err := stringMember(members, "kid")
	if err != nil {
		return nil, err
	}

	if kid == "" {
		return nil, fmt.Errorf(`%w: "kid" cannot be empty`, ErrMalformedKey)
	}

	alg, err := SelectAlgorithm(len(modulus))
	if err != nil {
		return nil, err
	}

	logger.V(logs.Debug).Info("selected algorithm", "kid", kid, "alg", alg.Name(), "hash", alg.HashName())

	key, err := importSigningKey(data, alg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyImport, err)
	}

	return &SigningKey{
		keyID:     kid,
		algorithm: alg,
		key:       key,
	}, nil
}

// importSigningKey applies the same checks as a WebCrypto import of an RSA-PSS JWK restricted to
// the "sign" usage.
func importSigningKey(data []byte, alg Algorithm) (*rsa.PrivateKey, error) {
	key, err := jwk.ParseKey(data)
	if err != nil {
		return nil, err
	}

	if key.KeyType().String() != "RSA" {
		return nil, fmt.Errorf("key type must be RSA, got %q", key.KeyType().String())
	}

	if _, ok := key.(jwk.RSAPrivateKey); !ok {
		return nil, fmt.Errorf("key does not contain RSA private key material")
	}

	if use, ok := key.KeyUsage(); ok && use != "sig" {
		return nil, fmt.Errorf(`key use must be "sig", got %q`, use)
	}

	if ops, ok := key.KeyOps(); ok && !hasKeyOp(ops, jwk.KeyOpSign) {
		return nil, fmt.Errorf(`key_ops must include "sign"`)
	}

	if keyAlg, ok := key.Algorithm(); ok && keyAlg.String() != alg.Name() {
		return nil, fmt.Errorf("key algorithm %s does not match %s required by the key size", keyAlg.String(), alg.Name())
	}

	var rawKey any
	if err := jwk.Export(key, &rawKey); err != nil {
		return nil, err
	}

	rsaKey, ok := rawKey.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("key is not an RSA private key, got %T", rawKey)
	}

	if err := rsaKey.Validate(); err != nil {
		return nil, err
	}

	return rsaKey, nil
}

func hasKeyOp(ops jwk.KeyOperationList, want jwk.KeyOperation) bool {
	for _, op := range ops {
		if op == want {
			return true
		}
	}
	return false
}

func stringMember(members map[string]json.RawMessage, name string) (string, error) {
	raw, ok := members[name]
	if !ok {
		return "", fmt.Errorf("%w: missing %q", ErrMalformedKey, name)
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", fmt.Errorf("%w: %q must be a string", ErrMalformedKey, name)
	}

	return value, nil
}

// decodeBase64URL decodes unpadded base64url. Trailing padding and the standard alphabet are
// tolerated as well.
func decodeBase64URL(s string) ([]byte, error) {
	s = strings.TrimRight(s, "=")

	b, err := base64.RawURLEncoding.DecodeString(s)
	if err == nil {
		return b, nil
	}

	if b, stdErr := base64.RawStdEncoding.DecodeString(s); stdErr == nil {
		return b, nil
	}

	return nil, err
}
