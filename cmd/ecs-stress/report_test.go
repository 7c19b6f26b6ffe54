package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/explore/ecs"
)

func TestStatsFinalize(t *testing.T) {
	var s Stats
	s.Finalize()
	assert.Zero(t, s.Avg)

	s.Samples = []time.Duration{3 * time.Millisecond, time.Millisecond, 5 * time.Millisecond}
	s.Finalize()
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 5*time.Millisecond, s.Max)
	assert.Equal(t, 3*time.Millisecond, s.Avg)
}

func TestReportGenerate(t *testing.T) {
	timer := ecs.NewSystemTimer()
	timer.Record("physics", 2*time.Millisecond)
	timer.Record("commit", time.Millisecond)

	r := ecs.NewRegistry()
	ecs.AddComponent(r, r.CreateEntity(), position{})
	r.Update()

	report := &Report{
		Duration:     time.Second,
		Entities:     1,
		Components:   componentCount,
		Systems:      1,
		Churn:        10,
		TotalUpdates: 42,
		Registry:     r.CollectStats(),
		Timings:      timer.GetStats(),
	}

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	out := buf.String()

	assert.Contains(t, out, "**Total Updates:** 42")
	assert.Contains(t, out, "| physics | 1 | 2ms | 2ms | 2ms |")
	assert.Contains(t, out, "| commit | 1 | 1ms | 1ms | 1ms |")
	assert.Contains(t, out, "  - position: 1 / 64")
	assert.NotContains(t, out, "GC Pause Durations")
}

func TestChurnKeepsSystemsConsistent(t *testing.T) {
	r := ecs.NewRegistry()
	physics := ecs.AddSystem(r, newPhysics())
	expiry := ecs.AddSystem(r, newExpiry())

	for i := 0; i < 50; i++ {
		e := r.CreateEntity()
		ecs.AddComponent(r, e, position{})
		ecs.AddComponent(r, e, velocity{X: 1})
		ecs.AddComponent(r, e, lifetime{Frames: i%5 + 1})
	}
	r.Update()
	require.Len(t, physics.Entities(), 50)

	for frame := 0; frame < 5; frame++ {
		physics.update(r, 1)
		expiry.update(r)
		r.Update()
	}

	assert.Empty(t, physics.Entities())
	assert.Empty(t, expiry.Entities())
	assert.Zero(t, r.EntityCount())
}
