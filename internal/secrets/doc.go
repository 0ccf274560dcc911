// Package secrets provides the password-based encryption used for dream
// exports.
//
// # Scheme
//
// A key is derived with PBKDF2-HMAC-SHA256 (100,000 iterations, 16-byte
// random salt) and used for AES-256-GCM with a 12-byte random nonce. The
// result is written as a packet:
//
//	{"_enc":"AESGCMv1","s":"<hex salt>","iv":"<hex nonce>","ct":"<hex ciphertext+tag>"}
//
// Salt and nonce are fresh for every call, so two encryptions of the same
// record never produce the same packet. Only decrypting back to the same
// plaintext is a meaningful check.
//
// # Failure Handling
//
//   - Unrecognized discriminator: ErrUnknownFormat
//   - Wrong password or tampered data: ErrAuthFailed (indistinguishable)
//   - Random source or cipher unavailable: ErrCryptoUnavailable
//
// Derived key bytes and password copies are wiped with memguard once the
// cipher has been built.
package secrets
