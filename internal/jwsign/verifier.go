package jwsign

import (
	"bytes"
	"context"
	"fmt"

	"github.com/lestrrat-go/jwx/v3/jws"
	"k8s.io/klog/v2"

	"github.com/jetstack/jwsign/pkg/logs"
)

// Verify checks a JWS in Compact Serialization against key and returns its payload.
// The "alg" of the protected header must match the key's algorithm.
func Verify(ctx context.Context, key *VerificationKey, compact []byte) ([]byte, error) {
	compact = bytes.TrimSpace(compact)

	payload, err := jws.Verify(compact, jws.WithKey(key.algorithm.Signature, key.key))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVerify, err)
	}

	klog.FromContext(ctx).WithName("jwsign").V(logs.Debug).Info("verified signature",
		"kid", key.keyID,
		"alg", key.algorithm.Name(),
		"payloadBytes", len(payload),
	)

	return payload, nil
}
