package saunarec

import (
	"errors"

	"github.com/kailas-cloud/saunarec/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrDataUnavailable = domain.ErrDataUnavailable
	ErrEmptyCorpus     = domain.ErrEmptyCorpus
	ErrInvalidPost     = domain.ErrInvalidPost
	ErrStorage         = domain.ErrStorage

	// ErrPostsDisabled is returned by Posts() when no post store is configured.
	ErrPostsDisabled = errors.New("saunarec: post board not configured (use WithPostsFile or WithRedis)")
)
