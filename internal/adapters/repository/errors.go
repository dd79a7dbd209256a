package repository

import "errors"

// Sentinel kinds for artifact store errors.
var (
	ErrArtifactNotFound = errors.New("artifact not found")
	ErrEmptyArtifact    = errors.New("artifact has no content")
)
