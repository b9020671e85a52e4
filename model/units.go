package model

import (
	"fmt"
	"strings"
)

// Units selects the measurement system requested from the weather source.
type Units string

const (
	Metric   Units = "metric"
	Imperial Units = "imperial"
)

// DefaultUnits is used when no preference has been stored.
const DefaultUnits = Metric

// AllUnits lists every supported measurement system.
func AllUnits() []Units {
	return []Units{Metric, Imperial}
}

// Value returns the wire-format string for u.
func (u Units) Value() string {
	return string(u)
}

// ParseUnits converts a wire value into Units.
func ParseUnits(value string) (Units, error) {
	switch Units(strings.ToLower(strings.TrimSpace(value))) {
	case Metric:
		return Metric, nil
	case Imperial:
		return Imperial, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownUnits, value)
	}
}
