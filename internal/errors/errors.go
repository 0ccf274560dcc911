package errors

import "errors"

// Import errors indicate content that could not be turned into records.
var (
	// ErrMalformedImport indicates the import content is not parseable as JSON.
	ErrMalformedImport = errors.New("import content is not valid JSON")

	// ErrUnknownFormat indicates an envelope whose _enc discriminator is not recognized.
	ErrUnknownFormat = errors.New("unknown encrypted format")
)

// Cryptographic errors indicate failures during encryption or decryption operations.
var (
	// ErrAuthFailed indicates the packet could not be authenticated.
	// A wrong password and tampered data both produce this error.
	ErrAuthFailed = errors.New("decryption failed: wrong password or corrupted data")

	// ErrCryptoUnavailable indicates the platform cannot provide the required primitives.
	ErrCryptoUnavailable = errors.New("cryptographic primitives unavailable")

	// ErrUnencryptedOutput indicates an encrypted export produced something that is not a packet.
	ErrUnencryptedOutput = errors.New("encrypted export did not produce an encrypted packet")
)

// Storage errors indicate failures reading or writing the record store.
var (
	// ErrStorageRead indicates the storage backend could not be read.
	ErrStorageRead = errors.New("failed to read from storage")

	// ErrStorageWrite indicates the storage backend could not be written.
	ErrStorageWrite = errors.New("failed to write to storage")

	// ErrStoreUnreadable indicates the stored collection exists but cannot be decoded.
	ErrStoreUnreadable = errors.New("stored dreams are unreadable")

	// ErrUnknownBackend indicates the configured storage backend does not exist.
	ErrUnknownBackend = errors.New("unknown storage backend")

	// ErrStoreNotEmpty indicates a migration target already holds dreams.
	ErrStoreNotEmpty = errors.New("target store already holds dreams")
)

// Record errors indicate issues with individual dreams.
var (
	// ErrDreamNotFound indicates no dream with the requested id exists.
	ErrDreamNotFound = errors.New("dream not found")
)

// Configuration errors.
var (
	// ErrInvalidConfig indicates the configuration failed validation.
	ErrInvalidConfig = errors.New("configuration is invalid")
)

// File errors indicate issues with file discovery or access.
var (
	// ErrNoFilesFound indicates no files matched the provided patterns.
	ErrNoFilesFound = errors.New("no matching files found")

	// ErrInvalidDateFormat indicates a date argument is not YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrFileNotFound indicates a specific file could not be located.
	ErrFileNotFound = errors.New("file not found")
)
