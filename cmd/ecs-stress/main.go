// Command ecs-stress churns a registry for a fixed time and prints a
// markdown report of frame and per-system timings.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/plus3/explore/ecs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of entities to create.")
	churn := flag.Int("churn", 100, "Entities killed and created every frame.")
	seed := flag.Int64("seed", 1, "Random seed.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	memProfile := flag.Bool("memprofile", false, "Write an allocation profile to the working directory.")
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if *memProfile {
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	log.Info("starting ECS stress test")
	rng := rand.New(rand.NewSource(*seed))

	// 1. Setup registry and systems
	registry := ecs.NewRegistry(ecs.WithCapacity(*entityCount))
	physics := ecs.AddSystem(registry, newPhysics())
	gravity := ecs.AddSystem(registry, newGravity())
	decay := ecs.AddSystem(registry, newDecay())
	expiry := ecs.AddSystem(registry, newExpiry())
	scoring := ecs.AddSystem(registry, newScoring())
	timer := ecs.NewSystemTimer()

	// 2. Populate with initial entities
	log.Info("populating registry", zap.Int("entities", *entityCount))
	live := make([]ecs.Entity, 0, *entityCount)
	spawn := func() {
		e := registry.CreateEntity()
		addRandomComponents(registry, rng, e, rng.Intn(5)+1)
		if rng.Intn(10) == 0 {
			registry.AddGroup(e, "tracked")
		}
		live = append(live, e)
	}
	for i := 0; i < *entityCount; i++ {
		spawn()
	}
	registry.Update()

	// 3. Run the simulation loop
	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Components:     componentCount,
		Systems:        len(registry.Systems()),
		Churn:          *churn,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info("running simulation", zap.Duration("duration", *duration))
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		dt := time.Since(lastFrameTime).Seconds()
		lastFrameTime = time.Now()
		updateStart := time.Now()

		// kill and replace a random slice of the population
		for i := 0; i < *churn && len(live) > 0; i++ {
			j := rng.Intn(len(live))
			registry.KillEntity(live[j])
			live[j] = live[len(live)-1]
			live = live[:len(live)-1]
			spawn()
		}

		timer.Measure(physics, func() { physics.update(registry, dt) })
		timer.Measure(gravity, func() { gravity.update(registry, dt) })
		timer.Measure(decay, func() { decay.update(registry) })
		timer.Measure(expiry, func() { expiry.update(registry) })
		timer.Measure(scoring, func() { scoring.update(registry) })

		commitStart := time.Now()
		registry.Update()
		timer.Record("commit", time.Since(commitStart))

		// systems kill entities too; forget the ones that are gone
		kept := live[:0]
		for _, e := range live {
			if registry.IsAlive(e) {
				kept = append(kept, e)
			}
		}
		live = kept

		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		report.TotalUpdates++
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	report.Registry = registry.CollectStats()
	report.Timings = timer.GetStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("simulation finished", zap.Int64("updates", report.TotalUpdates))

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Println("--- End of Report ---")
	return nil
}
