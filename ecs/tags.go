package ecs

import (
	"slices"

	"github.com/kamstrup/intmap"
)

// tagIndex maps unique names to single entities. Each entity holds at most one
// tag and each tag names at most one entity.
type tagIndex struct {
	byName   map[string]Entity
	byEntity *intmap.Map[Entity, string]
}

func newTagIndex() tagIndex {
	return tagIndex{
		byName:   make(map[string]Entity),
		byEntity: intmap.New[Entity, string](64),
	}
}

func (t *tagIndex) set(e Entity, tag string) {
	t.remove(e)
	if prev, ok := t.byName[tag]; ok {
		t.byEntity.Del(prev)
	}
	t.byName[tag] = e
	t.byEntity.Put(e, tag)
}

func (t *tagIndex) remove(e Entity) {
	tag, ok := t.byEntity.Get(e)
	if !ok {
		return
	}
	t.byEntity.Del(e)
	delete(t.byName, tag)
}

// entitySet is an unordered set of entities with O(1) insert and removal.
type entitySet struct {
	items []Entity
	index *intmap.Map[Entity, int]
}

func newEntitySet() *entitySet {
	return &entitySet{index: intmap.New[Entity, int](16)}
}

func (s *entitySet) add(e Entity) {
	if _, ok := s.index.Get(e); ok {
		return
	}
	s.index.Put(e, len(s.items))
	s.items = append(s.items, e)
}

func (s *entitySet) remove(e Entity) {
	i, ok := s.index.Get(e)
	if !ok {
		return
	}
	last := len(s.items) - 1
	if i != last {
		moved := s.items[last]
		s.items[i] = moved
		s.index.Put(moved, i)
	}
	s.items = s.items[:last]
	s.index.Del(e)
}

// groupIndex maps names to sets of entities. Each entity belongs to at most
// one group.
type groupIndex struct {
	byName   map[string]*entitySet
	byEntity *intmap.Map[Entity, string]
}

func newGroupIndex() groupIndex {
	return groupIndex{
		byName:   make(map[string]*entitySet),
		byEntity: intmap.New[Entity, string](256),
	}
}

func (g *groupIndex) set(e Entity, group string) {
	g.remove(e)
	set, ok := g.byName[group]
	if !ok {
		set = newEntitySet()
		g.byName[group] = set
	}
	set.add(e)
	g.byEntity.Put(e, group)
}

func (g *groupIndex) remove(e Entity) {
	group, ok := g.byEntity.Get(e)
	if !ok {
		return
	}
	g.byEntity.Del(e)
	set := g.byName[group]
	set.remove(e)
	if len(set.items) == 0 {
		delete(g.byName, group)
	}
}

// AddTag binds tag to e. An entity's previous tag is dropped, and an entity
// previously holding tag loses it.
func (r *Registry) AddTag(e Entity, tag string) {
	r.record(e)
	r.tags.set(e, tag)
}

// RemoveTag drops e's tag, if any.
func (r *Registry) RemoveTag(e Entity) {
	r.tags.remove(e)
}

// HasTag reports whether e holds tag.
func (r *Registry) HasTag(e Entity, tag string) bool {
	got, ok := r.tags.byEntity.Get(e)
	return ok && got == tag
}

// TagOf returns e's tag.
func (r *Registry) TagOf(e Entity) (string, bool) {
	return r.tags.byEntity.Get(e)
}

// GetByTag returns the entity holding tag.
func (r *Registry) GetByTag(tag string) (Entity, bool) {
	e, ok := r.tags.byName[tag]
	return e, ok
}

// AddGroup moves e into group, leaving any group it was in.
func (r *Registry) AddGroup(e Entity, group string) {
	r.record(e)
	r.groups.set(e, group)
}

// RemoveFromGroup takes e out of its group, if any.
func (r *Registry) RemoveFromGroup(e Entity) {
	r.groups.remove(e)
}

// HasGroup reports whether e belongs to group.
func (r *Registry) HasGroup(e Entity, group string) bool {
	got, ok := r.groups.byEntity.Get(e)
	return ok && got == group
}

// GroupOf returns the group e belongs to.
func (r *Registry) GroupOf(e Entity) (string, bool) {
	return r.groups.byEntity.Get(e)
}

// GetByGroup returns a copy of the members of group in no particular order.
// The result is empty when the group does not exist.
func (r *Registry) GetByGroup(group string) []Entity {
	set, ok := r.groups.byName[group]
	if !ok {
		return nil
	}
	return slices.Clone(set.items)
}

// GroupSize returns the number of entities in group.
func (r *Registry) GroupSize(group string) int {
	if set, ok := r.groups.byName[group]; ok {
		return len(set.items)
	}
	return 0
}
