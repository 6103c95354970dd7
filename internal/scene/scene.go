package scene

import (
	"errors"
	"fmt"
	"strings"
)

// Scene selects one of the fixed lighting behaviors.
type Scene int32

const (
	Off Scene = iota
	Party
	Romantic
	Relax
)

// ErrUnknownScene is returned by Parse for names outside the scene set.
var ErrUnknownScene = errors.New("unknown scene")

// All lists every scene in declaration order.
var All = []Scene{Off, Party, Romantic, Relax}

func (s Scene) String() string {
	switch s {
	case Off:
		return "off"
	case Party:
		return "party"
	case Romantic:
		return "romantic"
	case Relax:
		return "relax"
	default:
		return fmt.Sprintf("scene(%d)", int32(s))
	}
}

// Valid reports whether s is one of the declared scenes.
func (s Scene) Valid() bool {
	return s >= Off && s <= Relax
}

// Name returns the display label shown on notification surfaces.
func Name(s Scene) string {
	switch s {
	case Off:
		return "Scene: Off"
	case Party:
		return "Scene: Party"
	case Romantic:
		return "Scene: Romantic"
	case Relax:
		return "Scene: Relax"
	default:
		return "Scene: Unknown"
	}
}

// Parse maps a lowercase identifier (as produced by String) back to a Scene.
// Surrounding whitespace and letter case are ignored.
func Parse(name string) (Scene, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, s := range All {
		if s.String() == n {
			return s, nil
		}
	}
	return Off, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// MarshalText lets scenes appear by name in YAML and JSON.
func (s Scene) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownScene, int32(s))
	}
	return []byte(s.String()), nil
}

func (s *Scene) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
