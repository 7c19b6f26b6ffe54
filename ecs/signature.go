package ecs

import (
	"fmt"
	"math/bits"
	"strings"
)

// MaxComponents is the number of distinct component types a process may register.
const MaxComponents = 32

// Signature is a fixed-width bitset over component ids. Bit i is set when the
// component with id i is present (for an entity) or required (for a system).
type Signature uint32

// With returns a copy of s with the bit for id set.
func (s Signature) With(id ComponentID) Signature {
	return s | 1<<id
}

// Without returns a copy of s with the bit for id cleared.
func (s Signature) Without(id ComponentID) Signature {
	return s &^ (1 << id)
}

// Has reports whether the bit for id is set.
func (s Signature) Has(id ComponentID) bool {
	return s&(1<<id) != 0
}

// Contains reports whether every bit of required is also set in s. A system
// with signature required is interested in an entity with signature s exactly
// when s.Contains(required).
func (s Signature) Contains(required Signature) bool {
	return s&required == required
}

// Count returns the number of set bits.
func (s Signature) Count() int {
	return bits.OnesCount32(uint32(s))
}

// IsEmpty reports whether no bit is set.
func (s Signature) IsEmpty() bool {
	return s == 0
}

// IDs returns the component ids set in s in ascending order.
func (s Signature) IDs() []ComponentID {
	ids := make([]ComponentID, 0, s.Count())
	for v := uint32(s); v != 0; v &= v - 1 {
		ids = append(ids, ComponentID(bits.TrailingZeros32(v)))
	}
	return ids
}

func (s Signature) String() string {
	if s == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, id := range s.IDs() {
		if i > 0 {
			sb.WriteString(", ")
		}
		if t := ComponentTypeOf(id); t != nil {
			sb.WriteString(t.Name())
		} else {
			fmt.Fprintf(&sb, "#%d", id)
		}
	}
	sb.WriteByte('}')
	return sb.String()
}
