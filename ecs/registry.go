package ecs

import (
	"fmt"
	"reflect"
	"slices"

	"go.uber.org/zap"
)

// Registry owns every entity id, component pool, system and tag/group index.
// Structural changes (entity creation and destruction) are queued and only
// become visible to systems when Update runs the commit phase.
//
// A Registry is not safe for concurrent use.
type Registry struct {
	log *zap.Logger

	records []entityRecord
	free    []Entity
	alive   int

	pools [MaxComponents]componentPool

	systems     map[reflect.Type]System
	systemOrder []reflect.Type
	newSystems  []System

	addQueue  []Entity
	killQueue []Entity
	syncQueue []Entity

	// committed holds the signature each entity had when system membership
	// was last evaluated for it.
	committed []Signature

	tags   tagIndex
	groups groupIndex
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for entity lifecycle messages.
func WithLogger(log *zap.Logger) Option {
	return func(r *Registry) {
		r.log = log
	}
}

// WithCapacity preallocates bookkeeping for n entities.
func WithCapacity(n int) Option {
	return func(r *Registry) {
		r.records = make([]entityRecord, 0, n)
		r.committed = make([]Signature, 0, n)
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		log:     zap.NewNop(),
		systems: make(map[reflect.Type]System),
		tags:    newTagIndex(),
		groups:  newGroupIndex(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateEntity allocates an entity id and queues the entity for addition. The
// entity can receive components right away but no system sees it until the
// next Update.
func (r *Registry) CreateEntity(name ...string) Entity {
	var e Entity
	if len(r.free) > 0 {
		e = r.free[0]
		r.free = r.free[1:]
	} else {
		e = Entity(len(r.records))
		r.records = append(r.records, entityRecord{})
		r.committed = append(r.committed, 0)
	}

	rec := &r.records[e]
	rec.flags = flagAllocated | flagQueuedAdd
	if len(name) > 0 {
		rec.name = name[0]
	}
	r.addQueue = append(r.addQueue, e)
	r.alive++

	r.log.Debug("entity created", zap.Uint32("id", uint32(e)), zap.String("name", rec.name))
	return e
}

// KillEntity queues e for destruction. Its components stay readable until
// the next Update. Killing an entity twice before a commit is a no-op.
func (r *Registry) KillEntity(e Entity) {
	rec := r.record(e)
	if rec.is(flagQueuedKill) {
		return
	}
	rec.flags |= flagQueuedKill
	r.killQueue = append(r.killQueue, e)
}

// IsAlive reports whether e names an allocated entity. Entities queued for
// destruction are alive until the kill is committed.
func (r *Registry) IsAlive(e Entity) bool {
	return int(e) < len(r.records) && r.records[e].is(flagAllocated)
}

// IsDying reports whether e is queued for destruction.
func (r *Registry) IsDying(e Entity) bool {
	return r.IsAlive(e) && r.records[e].is(flagQueuedKill)
}

// EntityName returns the debug name given to CreateEntity.
func (r *Registry) EntityName(e Entity) string {
	return r.record(e).name
}

// Signature returns the set of components currently attached to e.
func (r *Registry) Signature(e Entity) Signature {
	return r.record(e).signature
}

// EntityCount returns the number of allocated entities, including pending
// additions and kills.
func (r *Registry) EntityCount() int {
	return r.alive
}

// PendingCount returns the number of queued additions and kills.
func (r *Registry) PendingCount() int {
	return len(r.addQueue) + len(r.killQueue)
}

// Entities calls fn for every allocated entity in id order until fn returns
// false.
func (r *Registry) Entities(fn func(Entity) bool) {
	for i := range r.records {
		if r.records[i].is(flagAllocated) && !fn(Entity(i)) {
			return
		}
	}
}

func (r *Registry) record(e Entity) *entityRecord {
	if int(e) >= len(r.records) || !r.records[e].is(flagAllocated) {
		panic(fmt.Sprintf("ecs: %s is not allocated", e))
	}
	return &r.records[e]
}

// touch queues a committed entity for membership re-evaluation after its
// signature changed.
func (r *Registry) touch(e Entity, rec *entityRecord) {
	if !rec.is(flagCommitted) || rec.is(flagQueuedSync) {
		return
	}
	rec.flags |= flagQueuedSync
	r.syncQueue = append(r.syncQueue, e)
}

// AddComponent attaches v to e, overwriting any existing T. The signature bit
// is set immediately; system membership follows at the next Update.
func AddComponent[T any](r *Registry, e Entity, v T) {
	rec := r.record(e)
	id := ComponentIDOf[T]()

	pool := r.pools[id]
	if pool == nil {
		pool = NewPool[T](len(r.records))
		r.pools[id] = pool
	}
	asPool[T](pool).Set(int(e), v)

	if !rec.signature.Has(id) {
		rec.signature = rec.signature.With(id)
		r.touch(e, rec)
	}
}

// RemoveComponent detaches T from e. Removing a component the entity does not
// have is a no-op.
func RemoveComponent[T any](r *Registry, e Entity) {
	rec := r.record(e)
	id := ComponentIDOf[T]()
	if !rec.signature.Has(id) {
		return
	}
	r.pools[id].Reset(int(e))
	rec.signature = rec.signature.Without(id)
	r.touch(e, rec)
}

// HasComponent reports whether T is attached to e.
func HasComponent[T any](r *Registry, e Entity) bool {
	return r.record(e).signature.Has(ComponentIDOf[T]())
}

// GetComponent returns a pointer to e's T. Asking for a component the entity
// does not have panics; use TryComponent when absence is expected.
func GetComponent[T any](r *Registry, e Entity) *T {
	id := ComponentIDOf[T]()
	if !r.record(e).signature.Has(id) {
		panic(fmt.Sprintf("ecs: %s has no %s component", e, reflect.TypeFor[T]()))
	}
	return asPool[T](r.pools[id]).Get(int(e))
}

// TryComponent returns e's T and true, or nil and false when e does not have it.
func TryComponent[T any](r *Registry, e Entity) (*T, bool) {
	id := ComponentIDOf[T]()
	if !r.record(e).signature.Has(id) {
		return nil, false
	}
	return asPool[T](r.pools[id]).Get(int(e)), true
}

// Component returns a pointer to e's component with the given id as an
// untyped value, for tools that do not know component types statically.
func (r *Registry) Component(e Entity, id ComponentID) (any, bool) {
	if !r.record(e).signature.Has(id) || r.pools[id] == nil {
		return nil, false
	}
	return r.pools[id].Ref(int(e)), true
}

// AddSystem registers s under its concrete type and returns it. Entities
// that already exist are matched against it at the next Update. Registering
// a second system of the same type panics.
func AddSystem[S System](r *Registry, s S) S {
	t := reflect.TypeFor[S]()
	if _, ok := r.systems[t]; ok {
		panic(fmt.Sprintf("ecs: system %s already registered", t))
	}
	r.systems[t] = s
	r.systemOrder = append(r.systemOrder, t)
	r.newSystems = append(r.newSystems, s)
	r.log.Debug("system added", zap.String("system", systemName(s)), zap.Stringer("signature", s.Signature()))
	return s
}

// GetSystem returns the registered system of type S.
func GetSystem[S System](r *Registry) (S, bool) {
	s, ok := r.systems[reflect.TypeFor[S]()]
	if !ok {
		var zero S
		return zero, false
	}
	return s.(S), true
}

// HasSystem reports whether a system of type S is registered.
func HasSystem[S System](r *Registry) bool {
	_, ok := r.systems[reflect.TypeFor[S]()]
	return ok
}

// RemoveSystem unregisters the system of type S. It reports whether one was
// registered.
func RemoveSystem[S System](r *Registry) bool {
	t := reflect.TypeFor[S]()
	s, ok := r.systems[t]
	if !ok {
		return false
	}
	delete(r.systems, t)
	r.systemOrder = slices.DeleteFunc(r.systemOrder, func(o reflect.Type) bool { return o == t })
	r.newSystems = slices.DeleteFunc(r.newSystems, func(o System) bool { return o == s })
	return true
}

// Systems returns the registered systems in registration order.
func (r *Registry) Systems() []System {
	out := make([]System, 0, len(r.systemOrder))
	for _, t := range r.systemOrder {
		out = append(out, r.systems[t])
	}
	return out
}

// Update runs the commit phase. Entities whose components changed since the
// last commit first leave every system they no longer match, so no system
// holds an entity missing a required component while others are added.
// Systems registered since the last commit are then backfilled from the
// current signatures, changed entities join the systems they now match,
// queued entities are added, and queued kills are applied: the entity leaves
// every system, its components and tag/group membership are purged and its
// id becomes reusable.
func (r *Registry) Update() {
	systems := r.Systems()
	settled := make([]System, 0, len(systems))
	for _, s := range systems {
		if !slices.Contains(r.newSystems, s) {
			settled = append(settled, s)
		}
	}

	r.syncQueue = slices.DeleteFunc(r.syncQueue, func(e Entity) bool {
		rec := &r.records[e]
		rec.flags &^= flagQueuedSync
		return !rec.is(flagAllocated)
	})
	for _, e := range r.syncQueue {
		was, now := r.committed[e], r.records[e].signature
		for _, s := range settled {
			if sig := s.Signature(); was.Contains(sig) && !now.Contains(sig) {
				s.RemoveEntity(e)
			}
		}
	}

	for _, s := range r.newSystems {
		sig := s.Signature()
		for i := range r.records {
			rec := &r.records[i]
			if rec.is(flagCommitted) && rec.signature.Contains(sig) {
				s.AddEntity(r, Entity(i))
			}
		}
	}
	r.newSystems = r.newSystems[:0]

	for _, e := range r.syncQueue {
		was, now := r.committed[e], r.records[e].signature
		for _, s := range settled {
			if sig := s.Signature(); now.Contains(sig) && !was.Contains(sig) {
				s.AddEntity(r, e)
			}
		}
		r.committed[e] = now
	}
	r.syncQueue = r.syncQueue[:0]

	for _, e := range r.addQueue {
		rec := &r.records[e]
		rec.flags = rec.flags&^flagQueuedAdd | flagCommitted
		for _, s := range systems {
			if rec.signature.Contains(s.Signature()) {
				s.AddEntity(r, e)
			}
		}
		r.committed[e] = rec.signature
	}
	r.addQueue = r.addQueue[:0]

	for _, e := range r.killQueue {
		r.destroy(e, systems)
	}
	r.killQueue = r.killQueue[:0]
}

func (r *Registry) destroy(e Entity, systems []System) {
	rec := &r.records[e]
	for _, s := range systems {
		if r.committed[e].Contains(s.Signature()) {
			s.RemoveEntity(e)
		}
	}
	for _, id := range rec.signature.IDs() {
		r.pools[id].Reset(int(e))
	}
	r.tags.remove(e)
	r.groups.remove(e)

	r.log.Debug("entity killed", zap.Uint32("id", uint32(e)), zap.String("name", rec.name))

	*rec = entityRecord{}
	r.committed[e] = 0
	r.free = append(r.free, e)
	r.alive--
}
