package protection

import (
	"context"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/docscan/internal/common"
	"github.com/dmitrijs2005/docscan/internal/kvstore"
	"github.com/dmitrijs2005/docscan/internal/logging"
)

// mapKey is the kvstore key holding the JSON-encoded protection map.
const mapKey = "protection"

// Guard is the PIN verification state machine. All mutations follow the
// read-modify-write contract of the kvstore: load the whole protection map,
// mutate, write the whole map back.
type Guard struct {
	store kvstore.Store
	log   logging.Logger

	// now is a seam so tests can control the clock.
	now func() time.Time
}

func NewGuard(store kvstore.Store, log logging.Logger) *Guard {
	return &Guard{store: store, log: log.With("component", "protection"), now: time.Now}
}

// wrapStorage tags an underlying store error so callers can match it with
// errors.Is(err, common.ErrorStorage).
func wrapStorage(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, errors.Join(common.ErrorStorage, err))
}

func (g *Guard) loadMap(ctx context.Context) (map[string]*Record, error) {
	b, err := g.store.Get(ctx, mapKey)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return map[string]*Record{}, nil
		}
		return nil, wrapStorage("loading protection map", err)
	}

	var m map[string]*Record
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, wrapStorage("decoding protection map", err)
	}
	if m == nil {
		m = map[string]*Record{}
	}
	return m, nil
}

func (g *Guard) saveMap(ctx context.Context, m map[string]*Record) error {
	b, err := json.Marshal(m)
	if err != nil {
		return wrapStorage("encoding protection map", err)
	}
	if err := g.store.Set(ctx, mapKey, b); err != nil {
		return wrapStorage("saving protection map", err)
	}
	return nil
}

// SetPin stores (or overwrites) a protection record for the document with a
// fresh per-record salt, zero failed attempts and no lockout.
func (g *Guard) SetPin(ctx context.Context, documentID, pin string) error {
	m, err := g.loadMap(ctx)
	if err != nil {
		return err
	}

	salt := common.GenerateRandByteArray(16)
	m[documentID] = &Record{
		DocumentID: documentID,
		PinHash:    hashPin(pin, salt),
		Salt:       hex.EncodeToString(salt),
		CreatedAt:  g.now(),
	}

	if err := g.saveMap(ctx, m); err != nil {
		return err
	}
	g.log.Info(ctx, "pin set", "documentId", documentID)
	return nil
}

// matches compares the candidate PIN against the stored hash, handling both
// hashing schemes.
func (g *Guard) matches(rec *Record, pin string) bool {
	var candidate string
	if rec.Salt == "" {
		candidate = legacyPinHash(pin)
	} else {
		salt, err := hex.DecodeString(rec.Salt)
		if err != nil {
			return false
		}
		candidate = hashPin(pin, salt)
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(rec.PinHash)) == 1
}

// VerifyPin checks pin against the document's protection record.
//
// It returns nil on success, and for an unprotected document it succeeds
// trivially without touching any state. During an active lockout it returns
// a *LockedError (matching common.ErrLocked) without consuming an attempt.
// A mismatch returns common.ErrInvalidPin, increments the attempt counter
// and, at MaxAttempts, starts a lockout. The record is persisted after
// every counted attempt, success or failure.
func (g *Guard) VerifyPin(ctx context.Context, documentID, pin string) error {
	m, err := g.loadMap(ctx)
	if err != nil {
		return err
	}

	rec, ok := m[documentID]
	if !ok {
		return nil
	}

	now := g.now()
	if rec.LockedUntil != nil && now.Before(*rec.LockedUntil) {
		return &LockedError{RetryAfter: rec.LockedUntil.Sub(now)}
	}

	if g.matches(rec, pin) {
		rec.FailedAttempts = 0
		rec.LockedUntil = nil
		rec.LastAccessed = &now
		if err := g.saveMap(ctx, m); err != nil {
			return err
		}
		return nil
	}

	rec.FailedAttempts++
	if rec.FailedAttempts >= MaxAttempts {
		until := now.Add(LockoutDuration)
		rec.LockedUntil = &until
		g.log.Warn(ctx, "document locked after repeated failures",
			"documentId", documentID, "attempts", rec.FailedAttempts)
	}
	if err := g.saveMap(ctx, m); err != nil {
		return err
	}
	return common.ErrInvalidPin
}

// RemovePin deletes the protection record after a successful verification.
// It reports whether the record was removed; on a failed verification the
// record (including the attempt counter mutation) stays in place.
func (g *Guard) RemovePin(ctx context.Context, documentID, pin string) (bool, error) {
	if err := g.VerifyPin(ctx, documentID, pin); err != nil {
		return false, err
	}

	if err := g.ForceRemovePin(ctx, documentID); err != nil {
		return false, err
	}
	return true, nil
}

// ForceRemovePin unconditionally deletes the protection record, bypassing
// verification. Recovery escape hatch.
func (g *Guard) ForceRemovePin(ctx context.Context, documentID string) error {
	m, err := g.loadMap(ctx)
	if err != nil {
		return err
	}
	if _, ok := m[documentID]; !ok {
		return nil
	}
	delete(m, documentID)
	if err := g.saveMap(ctx, m); err != nil {
		return err
	}
	g.log.Info(ctx, "pin removed", "documentId", documentID)
	return nil
}

// ChangePin verifies the old PIN and then stores a new record for the new
// one. The two steps are not transactional against concurrent modification;
// callers are single-threaded by construction.
func (g *Guard) ChangePin(ctx context.Context, documentID, oldPin, newPin string) error {
	if err := g.VerifyPin(ctx, documentID, oldPin); err != nil {
		return err
	}
	return g.SetPin(ctx, documentID, newPin)
}

// IsProtected reports whether a protection record exists for the document.
func (g *Guard) IsProtected(ctx context.Context, documentID string) (bool, error) {
	m, err := g.loadMap(ctx)
	if err != nil {
		return false, err
	}
	_, ok := m[documentID]
	return ok, nil
}

// BulkProtect applies the same PIN to every listed document in one pass,
// with a single map write.
func (g *Guard) BulkProtect(ctx context.Context, documentIDs []string, pin string) error {
	m, err := g.loadMap(ctx)
	if err != nil {
		return err
	}

	now := g.now()
	for _, id := range documentIDs {
		salt := common.GenerateRandByteArray(16)
		m[id] = &Record{
			DocumentID: id,
			PinHash:    hashPin(pin, salt),
			Salt:       hex.EncodeToString(salt),
			CreatedAt:  now,
		}
	}

	if err := g.saveMap(ctx, m); err != nil {
		return err
	}
	g.log.Info(ctx, "bulk protect", "count", len(documentIDs))
	return nil
}

// BulkUnprotect verifies the PIN against every listed document up front and
// deletes all records only if every check passes. The up-front check is a
// pure comparison: it does not consume attempts or trigger lockouts, so a
// bulk operation cannot lock out half the selection.
func (g *Guard) BulkUnprotect(ctx context.Context, documentIDs []string, pin string) (bool, error) {
	m, err := g.loadMap(ctx)
	if err != nil {
		return false, err
	}

	now := g.now()
	for _, id := range documentIDs {
		rec, ok := m[id]
		if !ok {
			continue // unprotected, nothing to verify
		}
		if rec.LockedUntil != nil && now.Before(*rec.LockedUntil) {
			return false, &LockedError{RetryAfter: rec.LockedUntil.Sub(now)}
		}
		if !g.matches(rec, pin) {
			return false, common.ErrInvalidPin
		}
	}

	for _, id := range documentIDs {
		delete(m, id)
	}
	if err := g.saveMap(ctx, m); err != nil {
		return false, err
	}
	g.log.Info(ctx, "bulk unprotect", "count", len(documentIDs))
	return true, nil
}
