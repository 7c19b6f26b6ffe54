package ecs

import (
	"sort"
	"time"
)

// RegistryStats is a snapshot of a registry's bookkeeping.
type RegistryStats struct {
	EntityCount     int
	HighestID       int
	FreeIDs         int
	PendingAdds     int
	PendingKills    int
	TagCount        int
	GroupCount      int
	Pools           []PoolStats
	Systems         []SystemInfo
	GroupBreakdown  map[string]int
	ComponentsInUse int
}

// PoolStats describes one component pool.
type PoolStats struct {
	Component string
	Capacity  int
	Attached  int
}

// SystemInfo describes one registered system.
type SystemInfo struct {
	Name        string
	Signature   Signature
	EntityCount int
}

// CollectStats gathers a snapshot of the registry's current state.
func (r *Registry) CollectStats() RegistryStats {
	stats := RegistryStats{
		EntityCount:    r.alive,
		HighestID:      len(r.records),
		FreeIDs:        len(r.free),
		PendingAdds:    len(r.addQueue),
		PendingKills:   len(r.killQueue),
		TagCount:       len(r.tags.byName),
		GroupCount:     len(r.groups.byName),
		GroupBreakdown: make(map[string]int, len(r.groups.byName)),
	}

	attached := make([]int, MaxComponents)
	for i := range r.records {
		for _, id := range r.records[i].signature.IDs() {
			attached[id]++
		}
	}
	for id, pool := range r.pools {
		if pool == nil {
			continue
		}
		stats.Pools = append(stats.Pools, PoolStats{
			Component: pool.Type().Name(),
			Capacity:  pool.Cap(),
			Attached:  attached[id],
		})
		stats.ComponentsInUse += attached[id]
	}
	sort.Slice(stats.Pools, func(i, j int) bool {
		return stats.Pools[i].Component < stats.Pools[j].Component
	})

	for _, s := range r.Systems() {
		stats.Systems = append(stats.Systems, SystemInfo{
			Name:        systemName(s),
			Signature:   s.Signature(),
			EntityCount: len(s.Entities()),
		})
	}

	for name, set := range r.groups.byName {
		stats.GroupBreakdown[name] = len(set.items)
	}
	return stats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// TimingStats summarises every system measured by a SystemTimer.
type TimingStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// SystemTimer measures how long each system's update takes. Systems are
// reported in the order they were first measured.
type SystemTimer struct {
	byName map[string]*systemStatsInternal
	order  []*systemStatsInternal
	now    func() time.Time
}

// NewSystemTimer creates an empty timer.
func NewSystemTimer() *SystemTimer {
	return &SystemTimer{
		byName: make(map[string]*systemStatsInternal),
		now:    time.Now,
	}
}

// Measure runs fn and records its duration under s's name.
func (t *SystemTimer) Measure(s System, fn func()) {
	start := t.now()
	fn()
	t.Record(systemName(s), t.now().Sub(start))
}

// Record adds one execution of the named system.
func (t *SystemTimer) Record(name string, d time.Duration) {
	stats, ok := t.byName[name]
	if !ok {
		stats = &systemStatsInternal{
			name:        name,
			minDuration: time.Duration(1<<63 - 1),
		}
		t.byName[name] = stats
		t.order = append(t.order, stats)
	}

	stats.executionCount++
	stats.lastDuration = d
	stats.totalDuration += d
	if d < stats.minDuration {
		stats.minDuration = d
	}
	if d > stats.maxDuration {
		stats.maxDuration = d
	}
}

// GetStats returns statistics about system execution.
func (t *SystemTimer) GetStats() *TimingStats {
	stats := &TimingStats{
		SystemCount: len(t.order),
		Systems:     make([]SystemStats, len(t.order)),
	}

	var totalExecs int64
	for i, internal := range t.order {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
