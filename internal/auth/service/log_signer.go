package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
)

type logSigner struct{}

// NewLogSigner creates a new HMAC-based user log signer using HKDF-SHA256
// for key derivation and HMAC-SHA256 for signature generation.
func NewLogSigner() LogSigner {
	return &logSigner{}
}

// deriveSigningKey uses HKDF-SHA256 to derive a 32-byte signing key from the root key.
// Separates the root key from the actual signing key usage.
// Info parameter: "user-log-signing-v1" (versioned for future algorithm changes).
func (l *logSigner) deriveSigningKey(rootKey []byte) ([]byte, error) {
	info := []byte("user-log-signing-v1")
	hash := sha256.New
	hkdf := hkdf.New(hash, rootKey, nil, info)

	signingKey := make([]byte, 32)
	if _, err := io.ReadFull(hkdf, signingKey); err != nil {
		return nil, err
	}

	return signingKey, nil
}

// canonicalizeLog converts a user log to canonical byte representation for signing.
// Format: id || user_id || type || message || created_at
// Uses length-prefixed encoding for variable-length fields to prevent ambiguity.
// A nil user ID is encoded as 16 zero bytes, distinct from any real UUIDv7.
func (l *logSigner) canonicalizeLog(log *authDomain.UserLog) []byte {
	buf := make([]byte, 0, 256)

	buf = append(buf, log.ID[:]...)

	if log.UserID != nil {
		buf = append(buf, log.UserID[:]...)
	} else {
		var zeroID [16]byte
		buf = append(buf, zeroID[:]...)
	}

	buf = appendLengthPrefixed(buf, []byte(string(log.Type)))
	buf = appendLengthPrefixed(buf, []byte(log.Message))

	// Timestamp in Unix nano for precision
	timeBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(timeBytes, uint64(log.CreatedAt.UnixNano()))
	buf = append(buf, timeBytes...)

	return buf
}

// appendLengthPrefixed adds a 4-byte big-endian length prefix followed by data.
// Format: [length (4 bytes)] + [data (length bytes)]
// Panics if data length exceeds uint32 max (4GB) to prevent integer overflow.
func appendLengthPrefixed(buf []byte, data []byte) []byte {
	dataLen := len(data)
	if dataLen > 0xFFFFFFFF {
		panic("data length exceeds uint32 max (4GB)")
	}
	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(dataLen))
	buf = append(buf, length...)
	buf = append(buf, data...)
	return buf
}

// Sign generates an HMAC-SHA256 signature for the user log.
// Returns a 32-byte signature or an error if key derivation fails.
func (l *logSigner) Sign(rootKey []byte, log *authDomain.UserLog) ([]byte, error) {
	signingKey, err := l.deriveSigningKey(rootKey)
	if err != nil {
		return nil, fmt.Errorf("failed to derive signing key: %w", err)
	}
	defer zero(signingKey) // Clear derived key from memory

	mac := hmac.New(sha256.New, signingKey)
	mac.Write(l.canonicalizeLog(log))
	signature := mac.Sum(nil)

	return signature, nil
}

// Verify checks if the user log signature is valid.
// Returns nil if valid, ErrSignatureInvalid if tampered or invalid.
func (l *logSigner) Verify(rootKey []byte, log *authDomain.UserLog) error {
	expectedSig, err := l.Sign(rootKey, log)
	if err != nil {
		return fmt.Errorf("failed to compute expected signature: %w", err)
	}

	if !hmac.Equal(log.Signature, expectedSig) {
		return authDomain.ErrSignatureInvalid
	}

	return nil
}

// zero overwrites sensitive data in memory with zeros.
// Prevents key material from lingering in memory after use.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
