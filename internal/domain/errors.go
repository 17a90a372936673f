package domain

import "errors"

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrSecretNotFound     = errors.New("secret not found")
	ErrUnknownSessionType = errors.New("unknown session type")
	ErrLedgerCorrupt      = errors.New("ledger is corrupt")
	ErrInvalidPolicy      = errors.New("invalid policy")
	ErrNoExecutor         = errors.New("no executor for action type")
)
