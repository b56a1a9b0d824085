// Package protection implements per-document PIN protection: salted PIN
// hashes, failed-attempt counting and timed lockout.
package protection

import "time"

// Record is the stored protection state for one document.
//
// Two hashing schemes coexist. New records get a per-record random salt and
// an argon2id digest. Records with an empty Salt predate that change and
// use the legacy fixed-salt SHA-256 digest; they keep verifying so stored
// hashes survive the upgrade.
type Record struct {
	DocumentID     string     `json:"documentId"`
	PinHash        string     `json:"pinHash"`
	Salt           string     `json:"salt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	LastAccessed   *time.Time `json:"lastAccessed,omitempty"`
	FailedAttempts int        `json:"failedAttempts"`
	LockedUntil    *time.Time `json:"lockedUntil,omitempty"`
}

const (
	// PinLength is the fixed PIN length. Input filtering is the caller's
	// responsibility; the guard only hashes and compares.
	PinLength = 4

	// MaxAttempts failed verifications in a row trigger a lockout.
	MaxAttempts = 5

	// LockoutDuration is the window during which all verification attempts
	// are rejected regardless of PIN correctness.
	LockoutDuration = 30 * time.Second
)
