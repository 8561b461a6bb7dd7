// Package catalog holds the back-office records shown on the data pages:
// destinations, boarding stages, and their mappings to external operator
// systems. Records live in an in-memory SQLite database seeded from YAML.
package catalog

import "fmt"

// Kind is the explicit type tag carried by every record.
type Kind string

// Record kinds.
const (
	KindDestination        Kind = "destination"
	KindDestinationMapping Kind = "destination-mapping"
	KindBoardingStage      Kind = "boarding-stage"
	KindBoardingMapping    Kind = "boarding-mapping"
)

// Kinds returns every kind in display order.
func Kinds() []Kind {
	return []Kind{KindDestination, KindDestinationMapping, KindBoardingStage, KindBoardingMapping}
}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown record kind %q", s)
}

// Noun returns the Spanish noun used in notifications, e.g. "mapeo de destino".
func (k Kind) Noun() string {
	switch k {
	case KindDestination:
		return "destino"
	case KindDestinationMapping:
		return "mapeo de destino"
	case KindBoardingStage:
		return "etapa de embarque"
	case KindBoardingMapping:
		return "mapeo de embarque"
	default:
		return "elemento"
	}
}

// DOMName returns the camel-case stem used for DOM ids of this kind,
// e.g. "boardingStage" for "boardingStageCreateModal".
func (k Kind) DOMName() string {
	switch k {
	case KindDestination:
		return "destination"
	case KindDestinationMapping:
		return "destinationMapping"
	case KindBoardingStage:
		return "boardingStage"
	case KindBoardingMapping:
		return "boardingMapping"
	default:
		return "item"
	}
}
