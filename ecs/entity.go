package ecs

import "strconv"

// Entity is an opaque handle identifying an entity inside one Registry. Ids
// are dense, start at 0 and are recycled once a kill has been committed.
// Entities carry no state; every operation goes through the owning Registry.
type Entity uint32

func (e Entity) String() string {
	return "entity#" + strconv.FormatUint(uint64(e), 10)
}

// entityFlags records an entity's lifecycle and which commit queues it sits in
// so queue entries are never duplicated.
type entityFlags uint8

const (
	flagAllocated entityFlags = 1 << iota
	flagCommitted
	flagQueuedAdd
	flagQueuedKill
	flagQueuedSync
)

// entityRecord is the registry's per-id bookkeeping.
type entityRecord struct {
	signature Signature
	flags     entityFlags
	name      string
}

func (r *entityRecord) is(f entityFlags) bool {
	return r.flags&f != 0
}
