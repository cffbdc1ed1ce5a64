package jwsign

import "errors"

// Every error returned by this package wraps exactly one of these, so callers can use errors.Is to
// find out which stage of the pipeline failed.
var (
	// ErrMissingKeyfile is returned when no key file path was given.
	ErrMissingKeyfile = errors.New("missing keyfile")

	// ErrReadInput is returned when the payload or the JWS to verify could not be read.
	ErrReadInput = errors.New("failed to read input")

	// ErrKeyFile is returned when the key file cannot be read or does not contain a JSON object.
	ErrKeyFile = errors.New("failed to read keyfile")

	// ErrMalformedKey is returned when a required JWK member is missing or badly encoded.
	ErrMalformedKey = errors.New("malformed key")

	// ErrUnsupportedKeySize is returned when the RSA modulus is not 256, 384 or 512 bytes long.
	ErrUnsupportedKeySize = errors.New("unsupported key size")

	// ErrKeyImport is returned when the JWK cannot be used as an RSA-PSS signing key.
	ErrKeyImport = errors.New("failed to import key")

	// ErrSign is returned when signing fails after the key was imported.
	ErrSign = errors.New("failed to sign payload")

	// ErrVerify is returned when a JWS does not verify against the given key.
	ErrVerify = errors.New("failed to verify signature")
)
