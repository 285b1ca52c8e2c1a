package arbor

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
	A float64 `yaml:"a"`
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Scale returns c with its RGB components multiplied by f. Alpha is kept.
func (c Color) Scale(f float64) Color {
	return Color{c.R * f, c.G * f, c.B * f, c.A}
}

// MembershipState is an entity's position in the scene registry lifecycle.
type MembershipState uint8

const (
	Unregistered  MembershipState = iota // not tracked and nothing queued
	PendingAdd                           // queued for insertion at the next PostUpdate
	Registered                           // present in the registry
	PendingRemove                        // present, queued for removal at the next PostUpdate
)

func (s MembershipState) String() string {
	switch s {
	case Unregistered:
		return "Unregistered"
	case PendingAdd:
		return "PendingAdd"
	case Registered:
		return "Registered"
	case PendingRemove:
		return "PendingRemove"
	default:
		return "MembershipState(?)"
	}
}

// EventType identifies a kind of scene lifecycle event.
type EventType uint8

const (
	EventEntityAdded   EventType = iota // entity entered the registry during PostUpdate
	EventEntityRemoved                  // entity left the registry during PostUpdate
)

// BlockKind groups profiler blocks by subsystem.
type BlockKind uint8

const (
	BlockGame     BlockKind = iota // gameplay code (behaviors, scripts)
	BlockCore                      // scene manager and transform resolution
	BlockRenderer                  // draw submission
	BlockContent                   // asset loading
	BlockMisc                      // anything else
)

func (k BlockKind) String() string {
	switch k {
	case BlockGame:
		return "game"
	case BlockCore:
		return "core"
	case BlockRenderer:
		return "renderer"
	case BlockContent:
		return "content"
	default:
		return "misc"
	}
}
