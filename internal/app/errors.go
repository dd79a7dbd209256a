package service

import "errors"

// Sentinel errors returned by the Service.
var (
	ErrUnknownMeet     = errors.New("unknown meet")
	ErrUnknownAward    = errors.New("unknown award kind")
	ErrNoHistory       = errors.New("no history table")
	ErrUnsupportedFile = errors.New("unsupported document")
)
