package model

import (
	"encoding/json"
	"fmt"
)

// Impact represents the severity tier of an Issue. The zero value is not
// a valid tier.
type Impact int

const (
	// ImpactLow indicates a minor issue.
	ImpactLow Impact = iota + 1

	// ImpactMedium indicates an issue worth addressing soon.
	ImpactMedium

	// ImpactHigh indicates an issue with significant effect on the site.
	ImpactHigh
)

// Wire names of the impact tiers. Matching is exact and case-sensitive.
const (
	impactLowName    = "Low"
	impactMediumName = "Medium"
	impactHighName   = "High"
)

// Impacts returns all impact tiers from most to least severe.
func Impacts() []Impact {
	return []Impact{ImpactHigh, ImpactMedium, ImpactLow}
}

// ParseImpact converts a wire name into an Impact.
// Only "High", "Medium" and "Low" are accepted.
func ParseImpact(s string) (Impact, error) {
	switch s {
	case impactHighName:
		return ImpactHigh, nil
	case impactMediumName:
		return ImpactMedium, nil
	case impactLowName:
		return ImpactLow, nil
	default:
		return 0, fmt.Errorf("unrecognized impact %q", s)
	}
}

// Valid reports whether i is one of the three defined tiers.
func (i Impact) Valid() bool {
	return i == ImpactHigh || i == ImpactMedium || i == ImpactLow
}

// String returns the wire name of the impact tier.
func (i Impact) String() string {
	switch i {
	case ImpactHigh:
		return impactHighName
	case ImpactMedium:
		return impactMediumName
	case ImpactLow:
		return impactLowName
	default:
		return "Unknown"
	}
}

// MarshalJSON encodes the impact as its wire name.
func (i Impact) MarshalJSON() ([]byte, error) {
	if !i.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid impact %d", int(i))
	}
	return json.Marshal(i.String())
}

// UnmarshalJSON decodes a wire name into an Impact.
func (i *Impact) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseImpact(s)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}
