package comscan

// Usability grades how easily a COM object can be instantiated
// programmatically: by name when a ProgID exists, by raw CLSID otherwise.
type Usability int

const (
	UsabilityVeryLow Usability = iota
	UsabilityLow
	UsabilityMedium
	UsabilityHigh
)

func (u Usability) String() string {
	switch u {
	case UsabilityHigh:
		return "High"
	case UsabilityMedium:
		return "Medium"
	case UsabilityLow:
		return "Low"
	default:
		return "Very Low"
	}
}

// Detail returns the explanation shown next to the level.
func (u Usability) Detail() string {
	switch u {
	case UsabilityHigh:
		return "has ProgID and description"
	case UsabilityMedium:
		return "has ProgID"
	case UsabilityLow:
		return "no ProgID, has description"
	default:
		return "no ProgID or description"
	}
}

// Classify derives the usability level from ProgID and description
// presence. It is total and deterministic over any entry.
func Classify(e Entry) Usability {
	switch {
	case e.HasProgID() && e.HasDescription():
		return UsabilityHigh
	case e.HasProgID():
		return UsabilityMedium
	case e.HasDescription():
		return UsabilityLow
	default:
		return UsabilityVeryLow
	}
}
