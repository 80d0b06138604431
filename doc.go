// Package schnorrid implements the interactive Schnorr identification
// protocol over the ristretto255 group: a three-message commit, challenge,
// response exchange in which a prover convinces a verifier that it knows the
// discrete logarithm of its public key, without revealing it. The package
// provides the two protocol engines and the key material they share; the
// wire codec, group arithmetic and line transport live in subpackages.
package schnorrid
