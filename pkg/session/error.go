package session

import "errors"

// ErrNotConfigured is returned when session operations are attempted
// but no session store has been configured.
var ErrNotConfigured = errors.New("session store not configured")
