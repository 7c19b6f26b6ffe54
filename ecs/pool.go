package ecs

import (
	"fmt"
	"reflect"
)

const (
	poolBlockSize = 64
)

// componentPool is the type-erased view of a Pool the registry keeps per
// component id.
type componentPool interface {
	EnsureCapacity(n int)
	Reset(index int)
	Cap() int
	Type() reflect.Type
	Ref(index int) any
}

// Pool stores components of type T indexed directly by entity id. Storage is
// split into fixed-size blocks so growing the pool never moves existing
// components and pointers returned by Get stay valid for the pool's lifetime.
type Pool[T any] struct {
	blocks [][poolBlockSize]T
}

// NewPool creates a pool able to hold at least capacity components.
func NewPool[T any](capacity int) *Pool[T] {
	p := &Pool[T]{}
	p.EnsureCapacity(capacity)
	return p
}

// EnsureCapacity grows the pool so indices below n are addressable. It never
// shrinks.
func (p *Pool[T]) EnsureCapacity(n int) {
	for len(p.blocks)*poolBlockSize < n {
		p.blocks = append(p.blocks, [poolBlockSize]T{})
	}
}

// Cap returns the number of addressable slots.
func (p *Pool[T]) Cap() int {
	return len(p.blocks) * poolBlockSize
}

// Set stores v at index, growing the pool when needed.
func (p *Pool[T]) Set(index int, v T) {
	p.EnsureCapacity(index + 1)
	p.blocks[index/poolBlockSize][index%poolBlockSize] = v
}

// Get returns a pointer to the slot at index. Out-of-range indices panic.
func (p *Pool[T]) Get(index int) *T {
	if index < 0 || index >= p.Cap() {
		panic(fmt.Sprintf("pool %s: index %d out of range [0, %d)", reflect.TypeFor[T](), index, p.Cap()))
	}
	return &p.blocks[index/poolBlockSize][index%poolBlockSize]
}

// Reset zeroes the slot at index. Indices outside the pool are ignored.
func (p *Pool[T]) Reset(index int) {
	if index < 0 || index >= p.Cap() {
		return
	}
	var zero T
	p.blocks[index/poolBlockSize][index%poolBlockSize] = zero
}

// Ref returns the slot at index as an untyped *T.
func (p *Pool[T]) Ref(index int) any {
	return p.Get(index)
}

func (p *Pool[T]) Type() reflect.Type {
	return reflect.TypeFor[T]()
}

// asPool narrows a type-erased pool to *Pool[T]. A mismatch means the registry
// handed out the wrong pool for an id and is reported as a panic.
func asPool[T any](p componentPool) *Pool[T] {
	typed, ok := p.(*Pool[T])
	if !ok {
		panic(fmt.Sprintf("component pool type mismatch: want %s, have %s", reflect.TypeFor[T](), p.Type()))
	}
	return typed
}
