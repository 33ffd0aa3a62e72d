package roulette

import "errors"

// Asset contract violations. None of these are retried: the round that hit
// one cannot continue.
var (
	ErrMalformedGeometry    = errors.New("malformed pocket geometry: odd vertex count")
	ErrInsufficientGeometry = errors.New("insufficient pocket geometry: fewer than 2 boundaries")
	ErrMissingMeshReference = errors.New("missing mesh reference")
	ErrMappingMismatch      = errors.New("pocket mapping does not match pocket table")
)
