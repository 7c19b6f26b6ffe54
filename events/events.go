package events

import "github.com/plus3/explore/ecs"

// Collision is emitted once per overlapping pair of colliders per frame.
type Collision struct {
	A, B ecs.Entity
}

// Involves reports whether e is one side of the collision, and returns the
// other side.
func (c Collision) Involves(e ecs.Entity) (other ecs.Entity, ok bool) {
	switch e {
	case c.A:
		return c.B, true
	case c.B:
		return c.A, true
	}
	return 0, false
}

// KeyPressed is emitted when a key goes down.
type KeyPressed struct {
	Key Key
}

// Key identifies a keyboard key independently of the input backend.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyUp
	KeyRight
	KeyDown
	KeyLeft
	KeySpace
	KeyD
	KeyEscape
)

var keyNames = [...]string{
	KeyUnknown: "unknown",
	KeyUp:      "up",
	KeyRight:   "right",
	KeyDown:    "down",
	KeyLeft:    "left",
	KeySpace:   "space",
	KeyD:       "d",
	KeyEscape:  "escape",
}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "unknown"
}
