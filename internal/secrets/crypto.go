package secrets

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	kerrors "github.com/PolarWolf314/dreamlog/internal/errors"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the PBKDF2 salt length in bytes.
	SaltSize = 16
	// NonceSize is the AES-GCM nonce length in bytes.
	NonceSize = 12
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32
	// Iterations is the PBKDF2-HMAC-SHA256 iteration count.
	Iterations = 100_000
)

// Key is a derived AES-256-GCM key. The raw key bytes are not retained and
// cannot be read back; the key is only usable to seal and open packets.
type Key struct {
	aead cipher.AEAD
}

// DeriveKey derives an AES-256-GCM key from password and salt with
// PBKDF2-HMAC-SHA256.
func DeriveKey(password, salt []byte) (*Key, error) {
	raw := pbkdf2.Key(password, salt, Iterations, KeySize, sha256.New)
	defer memguard.WipeBytes(raw)

	block, err := aes.NewCipher(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrCryptoUnavailable, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrCryptoUnavailable, err)
	}

	return &Key{aead: aead}, nil
}

// Engine encrypts and decrypts packets. Random supplies salts and nonces and
// defaults to crypto/rand.
type Engine struct {
	Random io.Reader
}

// DefaultEngine uses the operating system CSPRNG.
var DefaultEngine = Engine{Random: rand.Reader}

func (e Engine) random() io.Reader {
	if e.Random == nil {
		return rand.Reader
	}
	return e.Random
}

// Encrypt seals plaintext under a key derived from password.
//
// Every call draws a fresh salt and nonce, so encrypting the same input
// twice yields different packets. A failing random source returns
// ErrCryptoUnavailable; there is no fallback.
func (e Engine) Encrypt(plaintext, password string) (Packet, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(e.random(), salt); err != nil {
		return Packet{}, fmt.Errorf("%w: reading salt: %v", kerrors.ErrCryptoUnavailable, err)
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(e.random(), nonce); err != nil {
		return Packet{}, fmt.Errorf("%w: reading nonce: %v", kerrors.ErrCryptoUnavailable, err)
	}

	pwd := []byte(password)
	defer memguard.WipeBytes(pwd)

	key, err := DeriveKey(pwd, salt)
	if err != nil {
		return Packet{}, err
	}

	ciphertext := key.aead.Seal(nil, nonce, []byte(plaintext), nil)

	return Packet{
		Enc:  PacketFormat,
		Salt: hex.EncodeToString(salt),
		IV:   hex.EncodeToString(nonce),
		CT:   hex.EncodeToString(ciphertext),
	}, nil
}

// Decrypt opens a packet with a key derived from password.
//
// Returns ErrUnknownFormat if the packet discriminator is not AESGCMv1.
// Any other failure, including a wrong password, returns ErrAuthFailed.
func (e Engine) Decrypt(p Packet, password string) (string, error) {
	if p.Enc != PacketFormat {
		return "", fmt.Errorf("%w: %q", kerrors.ErrUnknownFormat, p.Enc)
	}

	salt, err := hex.DecodeString(p.Salt)
	if err != nil {
		return "", kerrors.ErrAuthFailed
	}
	nonce, err := hex.DecodeString(p.IV)
	if err != nil || len(nonce) != NonceSize {
		return "", kerrors.ErrAuthFailed
	}
	ciphertext, err := hex.DecodeString(p.CT)
	if err != nil {
		return "", kerrors.ErrAuthFailed
	}

	pwd := []byte(password)
	defer memguard.WipeBytes(pwd)

	key, err := DeriveKey(pwd, salt)
	if err != nil {
		return "", err
	}

	plaintext, err := key.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", kerrors.ErrAuthFailed
	}

	return string(plaintext), nil
}

// EncryptContext runs Encrypt on its own goroutine. If ctx ends first the
// result is abandoned; the running derivation is not interrupted.
func (e Engine) EncryptContext(ctx context.Context, plaintext, password string) (Packet, error) {
	return await(ctx, func() (Packet, error) {
		return e.Encrypt(plaintext, password)
	})
}

// DecryptContext runs Decrypt on its own goroutine with the same
// abandonment semantics as EncryptContext.
func (e Engine) DecryptContext(ctx context.Context, p Packet, password string) (string, error) {
	return await(ctx, func() (string, error) {
		return e.Decrypt(p, password)
	})
}

// Encrypt seals plaintext with the default engine.
func Encrypt(plaintext, password string) (Packet, error) {
	return DefaultEngine.Encrypt(plaintext, password)
}

// Decrypt opens a packet with the default engine.
func Decrypt(p Packet, password string) (string, error) {
	return DefaultEngine.Decrypt(p, password)
}

type outcome[T any] struct {
	value T
	err   error
}

func await[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	done := make(chan outcome[T], 1)
	go func() {
		v, err := fn()
		done <- outcome[T]{value: v, err: err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case out := <-done:
		return out.value, out.err
	}
}
