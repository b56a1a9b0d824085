package protection

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/argon2"
)

// legacySalt is the fixed salt of the original hashing scheme. Kept only so
// records written before per-record salts still verify.
const legacySalt = "DocScanner2024Salt"

// legacyPinHash computes the original digest: sha256(salt || pin || salt)
// with the fixed salt constant.
func legacyPinHash(pin string) string {
	h := sha256.Sum256([]byte(legacySalt + pin + legacySalt))
	return hex.EncodeToString(h[:])
}

// hashPin derives the current-scheme digest with argon2id and a per-record
// salt.
func hashPin(pin string, salt []byte) string {
	d := argon2.IDKey([]byte(pin), salt, 1, 64*1024, 4, 32)
	return hex.EncodeToString(d)
}
