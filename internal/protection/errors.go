package protection

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/docscan/internal/common"
)

// LockedError reports a verification attempt during an active lockout
// window. It matches common.ErrLocked via errors.Is and carries the time
// remaining so callers can show a countdown instead of a plain rejection.
type LockedError struct {
	RetryAfter time.Duration
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("document locked, retry in %ds", int(e.RetryAfter.Seconds()))
}

func (e *LockedError) Is(target error) bool {
	return target == common.ErrLocked
}
