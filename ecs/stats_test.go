package ecs

import (
	"testing"
	"time"
)

type statsPosition struct{ X, Y float32 }
type statsLabel string

type statsSystem struct {
	BaseSystem
}

func TestRegistryStats(t *testing.T) {
	r := NewRegistry()

	stats := r.CollectStats()
	if stats.EntityCount != 0 {
		t.Errorf("expected 0 entities, got %d", stats.EntityCount)
	}
	if len(stats.Pools) != 0 {
		t.Errorf("expected no pools, got %d", len(stats.Pools))
	}

	s := &statsSystem{BaseSystem: NewBaseSystem("positions")}
	Require[statsPosition](&s.BaseSystem)
	AddSystem(r, s)

	a := r.CreateEntity()
	AddComponent(r, a, statsPosition{})
	AddComponent(r, a, statsLabel("a"))
	b := r.CreateEntity()
	AddComponent(r, b, statsPosition{})
	c := r.CreateEntity()
	r.AddTag(a, "player")
	r.AddGroup(b, "enemies")
	r.AddGroup(c, "enemies")

	stats = r.CollectStats()
	if stats.PendingAdds != 3 {
		t.Errorf("expected 3 pending adds, got %d", stats.PendingAdds)
	}

	r.Update()
	r.KillEntity(c)

	stats = r.CollectStats()
	if stats.EntityCount != 3 {
		t.Errorf("expected 3 entities, got %d", stats.EntityCount)
	}
	if stats.PendingKills != 1 {
		t.Errorf("expected 1 pending kill, got %d", stats.PendingKills)
	}
	if stats.TagCount != 1 || stats.GroupCount != 1 {
		t.Errorf("expected 1 tag and 1 group, got %d and %d", stats.TagCount, stats.GroupCount)
	}
	if stats.GroupBreakdown["enemies"] != 2 {
		t.Errorf("expected 2 enemies, got %d", stats.GroupBreakdown["enemies"])
	}
	if len(stats.Pools) != 2 {
		t.Fatalf("expected 2 pools, got %d", len(stats.Pools))
	}
	if stats.ComponentsInUse != 3 {
		t.Errorf("expected 3 attached components, got %d", stats.ComponentsInUse)
	}
	for _, pool := range stats.Pools {
		switch pool.Component {
		case "statsPosition":
			if pool.Attached != 2 {
				t.Errorf("expected 2 positions, got %d", pool.Attached)
			}
		case "statsLabel":
			if pool.Attached != 1 {
				t.Errorf("expected 1 label, got %d", pool.Attached)
			}
		default:
			t.Errorf("unexpected pool %s", pool.Component)
		}
		if pool.Capacity < 64 {
			t.Errorf("expected at least one block for %s, got %d", pool.Component, pool.Capacity)
		}
	}
	if len(stats.Systems) != 1 || stats.Systems[0].Name != "positions" || stats.Systems[0].EntityCount != 2 {
		t.Errorf("unexpected system stats: %+v", stats.Systems)
	}

	r.Update()
	stats = r.CollectStats()
	if stats.FreeIDs != 1 {
		t.Errorf("expected 1 free id, got %d", stats.FreeIDs)
	}
	if stats.GroupBreakdown["enemies"] != 1 {
		t.Errorf("expected 1 enemy after kill, got %d", stats.GroupBreakdown["enemies"])
	}
}

func TestKillZeroesPoolSlots(t *testing.T) {
	r := NewRegistry()
	e := r.CreateEntity()
	AddComponent(r, e, statsPosition{X: 3, Y: 4})
	r.Update()

	r.KillEntity(e)
	r.Update()

	pool := asPool[statsPosition](r.pools[ComponentIDOf[statsPosition]()])
	if got := *pool.Get(int(e)); got != (statsPosition{}) {
		t.Errorf("expected zeroed slot after kill, got %+v", got)
	}
}

func TestSystemTimer(t *testing.T) {
	timer := NewSystemTimer()

	timer.Record("movement", 2*time.Millisecond)
	timer.Record("movement", 4*time.Millisecond)
	timer.Record("render", 10*time.Millisecond)

	stats := timer.GetStats()
	if stats.SystemCount != 2 {
		t.Fatalf("expected 2 systems, got %d", stats.SystemCount)
	}
	if stats.TotalExecutions != 3 {
		t.Errorf("expected 3 executions, got %d", stats.TotalExecutions)
	}

	movement := stats.Systems[0]
	if movement.Name != "movement" {
		t.Errorf("expected movement first, got %s", movement.Name)
	}
	if movement.MinDuration != 2*time.Millisecond || movement.MaxDuration != 4*time.Millisecond {
		t.Errorf("unexpected min/max: %v/%v", movement.MinDuration, movement.MaxDuration)
	}
	if movement.AvgDuration != 3*time.Millisecond {
		t.Errorf("expected 3ms average, got %v", movement.AvgDuration)
	}
	if movement.LastDuration != 4*time.Millisecond || movement.TotalDuration != 6*time.Millisecond {
		t.Errorf("unexpected last/total: %v/%v", movement.LastDuration, movement.TotalDuration)
	}
}

func TestSystemTimerMeasure(t *testing.T) {
	timer := NewSystemTimer()
	tick := time.Unix(0, 0)
	timer.now = func() time.Time {
		tick = tick.Add(5 * time.Millisecond)
		return tick
	}

	s := &statsSystem{}
	ran := false
	timer.Measure(s, func() { ran = true })

	if !ran {
		t.Fatal("expected measured function to run")
	}
	stats := timer.GetStats()
	if stats.Systems[0].Name != "statsSystem" {
		t.Errorf("expected name from type, got %q", stats.Systems[0].Name)
	}
	if stats.Systems[0].LastDuration != 5*time.Millisecond {
		t.Errorf("expected 5ms, got %v", stats.Systems[0].LastDuration)
	}
}
