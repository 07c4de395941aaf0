package main

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/orbitrig/ecs"
	"github.com/plus3/orbitrig/rig"
)

type Report struct {
	// Configuration
	ConfigPath string
	Script     string
	UPS        float64
	Realtime   bool

	// Results
	Ticks         uint64
	TotalTime     time.Duration
	TickTime      Stats
	Rig           rig.OrbitState
	Camera        rig.Transform
	Subject       rig.Transform
	Velocity      rig.Velocity
	Grounded      bool
	Systems       []ecs.SystemStats
	Storage       *ecs.StorageStats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// Collect copies the final rig and subject state out of world.
func (r *Report) Collect(world *rig.World) error {
	state, _, camera, ok := world.Rig()
	if !ok {
		return errors.New("no camera rig was spawned")
	}
	subject, velocity, grounded, ok := world.Subject()
	if !ok {
		return errors.New("no subject was spawned")
	}

	r.Rig = *state
	r.Camera = *camera
	r.Subject = *subject
	r.Velocity = *velocity
	r.Grounded = bool(*grounded)
	r.Systems = world.Scheduler.GetStats().Systems
	r.Storage = world.Storage.CollectStats()
	return nil
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Orbit Rig Run

## Configuration
- **Config:** {{if .ConfigPath}}{{.ConfigPath}}{{else}}built-in defaults{{end}}
- **Script:** {{.Script}}
- **Updates Per Second:** {{.UPS}}
- **Realtime:** {{.Realtime}}

## Camera Rig
- **Center:** {{vec .Rig.Center}}
- **Radius:** {{printf "%.4f" .Rig.Radius}}
- **Yaw:** {{deg .Rig.Yaw}}°
- **Pitch:** {{deg .Rig.Pitch}}°
- **Upside Down:** {{.Rig.UpsideDown}}
- **Position:** {{vec .Camera.Translation}}
- **Forward:** {{vec .Camera.Forward}}

## Subject
- **Position:** {{vec .Subject.Translation}}
- **Velocity:** {{vec .Velocity.Linear}}
- **Grounded:** {{.Grounded}}

## Performance
- **Ticks:** {{.Ticks}}
- **Total Time:** {{.TotalTime}}
{{- if .TickTime.Samples}}
- **Tick Time:** avg {{.TickTime.Avg}}, min {{.TickTime.Min}}, max {{.TickTime.Max}}
{{- end}}
- **Entities:** {{.Storage.TotalEntityCount}} in {{.Storage.ArchetypeCount}} archetypes, {{.Storage.SingletonCount}} singletons
- **Heap Alloc:** {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}

| System | Runs | Skips | Avg | Max |
|---|---|---|---|---|
{{- range .Systems}}
| {{.Name}}{{if .Startup}} (startup){{end}} | {{.ExecutionCount}} | {{.SkipCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{- end}}
`

	fm := template.FuncMap{
		"vec": func(v mgl32.Vec3) string {
			return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X(), v.Y(), v.Z())
		},
		"deg": func(rad float32) string {
			return fmt.Sprintf("%.2f", mgl32.RadToDeg(rad))
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
