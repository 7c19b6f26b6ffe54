package ecs_test

import (
	"testing"

	"github.com/plus3/explore/ecs"
)

func BenchmarkCreateEntity(b *testing.B) {
	r := ecs.NewRegistry()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e := r.CreateEntity()
		ecs.AddComponent(r, e, Position{X: 1.0, Y: 2.0})
		ecs.AddComponent(r, e, Velocity{DX: 0.5, DY: 0.5})
	}
}

func BenchmarkCommit(b *testing.B) {
	r := ecs.NewRegistry()
	ecs.AddSystem(r, newMoverSystem())
	ecs.AddSystem(r, newHealthSystem())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e := r.CreateEntity()
		ecs.AddComponent(r, e, Position{})
		ecs.AddComponent(r, e, Velocity{})
		r.Update()
		r.KillEntity(e)
		r.Update()
	}
}

func BenchmarkGetComponent(b *testing.B) {
	r := ecs.NewRegistry()
	ids := make([]ecs.Entity, 1000)
	for i := range ids {
		ids[i] = r.CreateEntity()
		ecs.AddComponent(r, ids[i], Position{X: float32(i)})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ecs.GetComponent[Position](r, ids[i%len(ids)])
	}
}

func BenchmarkMoverUpdate(b *testing.B) {
	r := ecs.NewRegistry()
	mover := ecs.AddSystem(r, newMoverSystem())
	for i := 0; i < 10_000; i++ {
		e := r.CreateEntity()
		ecs.AddComponent(r, e, Position{})
		ecs.AddComponent(r, e, Velocity{DX: 1, DY: 1})
	}
	r.Update()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mover.Update(r, 0.016)
	}
}

func BenchmarkGroupChurn(b *testing.B) {
	r := ecs.NewRegistry()
	ids := make([]ecs.Entity, 256)
	for i := range ids {
		ids[i] = r.CreateEntity()
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e := ids[i%len(ids)]
		r.AddGroup(e, "enemies")
		r.RemoveFromGroup(e)
	}
}
