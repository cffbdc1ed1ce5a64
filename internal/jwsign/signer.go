package jwsign

import (
	"context"
	"fmt"

	"github.com/lestrrat-go/jwx/v3/jws"
	"k8s.io/klog/v2"

	"github.com/jetstack/jwsign/pkg/logs"
)

// Sign signs payload with key and returns the JWS in Compact Serialization.
//
// The protected header contains exactly "alg" and "kid". The payload is taken as raw bytes; it
// does not need to be JSON or valid UTF-8 and may be empty.
func Sign(ctx context.Context, key *SigningKey, payload []byte) ([]byte, error) {
	headers := jws.NewHeaders()
	if err := headers.Set(jws.KeyIDKey, key.keyID); err != nil {
		return nil, fmt.Errorf("%w: failed to set key ID header: %w", ErrSign, err)
	}

	// PS* signatures use a salt as long as the hash output.
	signed, err := jws.Sign(
		payload,
		jws.WithKey(key.algorithm.Signature, key.key, jws.WithProtectedHeaders(headers)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSign, err)
	}

	klog.FromContext(ctx).WithName("jwsign").V(logs.Debug).Info("signed payload",
		"kid", key.keyID,
		"alg", key.algorithm.Name(),
		"payloadBytes", len(payload),
	)

	return signed, nil
}
