package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/plus3/orbitrig/config"
	"github.com/plus3/orbitrig/ecs"
	"github.com/plus3/orbitrig/rig"
)

func main() {
	configPath := flag.String("config", "", "YAML settings file; empty uses the built-in defaults.")
	scriptPath := flag.String("script", "", "YAML input script to replay.")
	ticks := flag.Int("ticks", 0, "Ticks to run. Zero runs the script's length, or 600 without a script.")
	ups := flag.Float64("ups", 60, "Updates per second; the step of every tick is 1/ups.")
	realtime := flag.Bool("realtime", false, "Pace ticks against the wall clock instead of running flat out.")
	flag.Parse()

	if *ups <= 0 {
		log.Fatalf("-ups must be positive, got %v", *ups)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	opts := cfg.Options()
	var scripted *rig.ScriptedInputSystem
	scriptName := "none"
	if *scriptPath != "" {
		script, err := config.LoadScript(*scriptPath)
		if err != nil {
			log.Fatalf("Failed to load script: %v", err)
		}
		scripted, err = rig.NewScriptedInput(script)
		if err != nil {
			log.Fatalf("Failed to compile script: %v", err)
		}
		opts.Before = []ecs.System{scripted}
		scriptName = script.Name
		if *ticks == 0 {
			*ticks = script.Ticks()
		}
	}
	if *ticks == 0 {
		*ticks = 600
	}

	world := rig.NewWorld(opts)

	report := &Report{
		ConfigPath: *configPath,
		Script:     scriptName,
		UPS:        *ups,
		Realtime:   *realtime,
		TickTime: Stats{
			Samples: make([]time.Duration, 0, *ticks),
		},
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running %d ticks at %v updates per second...\n", *ticks, *ups)
	startTime := time.Now()

	if *realtime {
		interval := time.Duration(float64(time.Second) / *ups)
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		ctx, cancel := context.WithTimeout(ctx, time.Duration(*ticks)*interval)
		defer cancel()
		world.Scheduler.Run(ctx, interval)
	} else {
		dt := 1 / *ups
		for i := 0; i < *ticks; i++ {
			tickStart := time.Now()
			world.Step(dt)
			report.TickTime.Samples = append(report.TickTime.Samples, time.Since(tickStart))
		}
	}

	report.TotalTime = time.Since(startTime)
	report.Ticks = world.Scheduler.Ticks()
	report.TickTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)
	if scripted != nil && !scripted.Done() {
		log.Println("Run ended before the script finished.")
	}

	if err := report.Collect(world); err != nil {
		log.Fatalf("Failed to collect results: %v", err)
	}

	fmt.Println("\n--- Rig Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
