package telemetry

import "strings"

// Target selects which reading variant and physical store an ingested
// payload belongs to.
type Target int

const (
	TargetDefault Target = iota
	TargetBrise
	TargetPavimentos
)

// ParseTarget resolves the "monitoring" tag from a payload. Matching is
// case-insensitive; unknown or empty tags resolve to TargetDefault.
func ParseTarget(tag string) Target {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "brise":
		return TargetBrise
	case "pavimentos":
		return TargetPavimentos
	default:
		return TargetDefault
	}
}

func (t Target) String() string {
	switch t {
	case TargetBrise:
		return "brise"
	case TargetPavimentos:
		return "pavimentos"
	default:
		return "default"
	}
}
