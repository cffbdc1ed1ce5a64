// Package jwsign produces JWS Compact Serialization signatures from RSA private keys in JWK format.
//
// The signing algorithm is not configurable: it is derived from the size of the RSA modulus, so a
// 2048-bit key always signs with PS256, a 3072-bit key with PS384 and a 4096-bit key with PS512.
// Other key sizes are rejected before the key is imported.
//
// Keys are split into two handles. A SigningKey can only sign and a VerificationKey can only verify;
// a VerificationKey can be derived from a SigningKey but never the other way around.
package jwsign
