package entities

import "errors"

// Error classes shared by the ledger, the policy services and the rollback engine.
// Callers classify with errors.Is; concrete errors wrap one of these.
var (
	ErrStorage           = errors.New("ledger storage unavailable")
	ErrNotFound          = errors.New("action not found")
	ErrAlreadyRolledBack = errors.New("action already rolled back")
	ErrUnsupportedAction = errors.New("rollback not supported for action type")
	ErrExternalMutation  = errors.New("external mutation failed")
	ErrInvalidChange     = errors.New("invalid change payload")
)
