package jwsign

import (
	"crypto"
	"fmt"

	"github.com/lestrrat-go/jwx/v3/jwa"
)

const (
	// Modulus sizes in bytes, for 2048, 3072 and 4096 bit keys.
	modulusSize2048 = 256
	modulusSize3072 = 384
	modulusSize4096 = 512
)

// Algorithm is the pair of JWS signature algorithm and hash function used with a key.
type Algorithm struct {
	// Signature is the JWS "alg" value, one of PS256, PS384 or PS512.
	Signature jwa.SignatureAlgorithm

	// Hash is the digest used both for the message and for MGF1. The PSS salt is as long as its output.
	Hash crypto.Hash
}

// Name returns the JWS "alg" header value, e.g. "PS256".
func (a Algorithm) Name() string {
	return a.Signature.String()
}

// HashName returns the name of the hash function, e.g. "SHA-256".
func (a Algorithm) HashName() string {
	return a.Hash.String()
}

// SelectAlgorithm maps the byte length of an RSA modulus to the algorithm used to sign with it.
//
//	256 bytes (2048 bits) -> PS256 / SHA-256
//	384 bytes (3072 bits) -> PS384 / SHA-384
//	512 bytes (4096 bits) -> PS512 / SHA-512
//
// Any other length returns an error wrapping ErrUnsupportedKeySize.
func SelectAlgorithm(modulusLen int) (Algorithm, error) {
	switch modulusLen {
	case modulusSize2048:
		return Algorithm{Signature: jwa.PS256(), Hash: crypto.SHA256}, nil
	case modulusSize3072:
		return Algorithm{Signature: jwa.PS384(), Hash: crypto.SHA384}, nil
	case modulusSize4096:
		return Algorithm{Signature: jwa.PS512(), Hash: crypto.SHA512}, nil
	default:
		return Algorithm{}, fmt.Errorf("%w: modulus is %d bytes, expected %d, %d or %d",
			ErrUnsupportedKeySize, modulusLen, modulusSize2048, modulusSize3072, modulusSize4096)
	}
}
