// Package compat validates the shape of compatibility reports received
// from the remote synastry service. The scoring algorithm itself is the
// remote side's concern and is never reproduced here.
package compat

import (
	"errors"
	"fmt"

	"astro-chart-lab/internal/domain"
)

// Shape validation errors.
var (
	// ErrScoreOutOfRange is returned when any score falls outside 0..100.
	ErrScoreOutOfRange = errors.New("score out of range")

	// ErrEmptyAspectList is returned when a score is present but the
	// synastry aspect list is empty.
	ErrEmptyAspectList = errors.New("empty synastry aspect list")

	// ErrNilReport is returned for a nil report.
	ErrNilReport = errors.New("nil compatibility report")
)

// Validate checks a compatibility report for structural sanity:
// overall score in 0..100, every per-system score in 0..100, and a
// non-empty aspect list whenever a score is present.
func Validate(r *domain.CompatibilityReport) error {
	if r == nil {
		return ErrNilReport
	}
	if r.OverallScore < 0 || r.OverallScore > 100 {
		return fmt.Errorf("%w: overall score %d", ErrScoreOutOfRange, r.OverallScore)
	}
	for system, score := range r.PerSystemScores {
		if score < 0 || score > 100 {
			return fmt.Errorf("%w: %s score %d", ErrScoreOutOfRange, system, score)
		}
	}
	if len(r.SynastryAspects) == 0 {
		return ErrEmptyAspectList
	}
	for i, aspect := range r.SynastryAspects {
		if aspect == "" {
			return fmt.Errorf("%w: blank aspect at index %d", ErrEmptyAspectList, i)
		}
	}
	return nil
}
