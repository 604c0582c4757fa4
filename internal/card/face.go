// Package card renders the two-sided profile card and exports its visible face as PNG.
package card

import "fmt"

// Face is one side of the card. Exactly one face is active at a time.
type Face int

const (
	Front Face = iota
	Back
)

// Marker is the stable name under which a surface exposes the face's layer.
func (f Face) Marker() string {
	if f == Back {
		return "back"
	}
	return "front"
}

func (f Face) String() string { return f.Marker() }

// Other returns the opposite face.
func (f Face) Other() Face {
	if f == Back {
		return Front
	}
	return Back
}

// ParseFace accepts "front" or "back". An empty string means Front.
func ParseFace(s string) (Face, error) {
	switch s {
	case "", "front":
		return Front, nil
	case "back":
		return Back, nil
	default:
		return Front, fmt.Errorf("unknown card face %q (want front or back)", s)
	}
}
