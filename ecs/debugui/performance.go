package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/orbitrig/ecs"
)

// FrameHistory is a ring buffer of frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	ordered []float32
	next    int
	filled  int
}

func NewFrameHistory(frames int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, max(frames, 1))}
}

// Push records one frame of dt seconds.
func (h *FrameHistory) Push(dt float64) {
	h.samples[h.next] = float32(dt * 1000)
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// Average returns the mean of the recorded frames, or zero before the first push.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var total float32
	for _, ms := range h.samples[:h.filled] {
		total += ms
	}
	return total / float32(h.filled)
}

// Samples returns the recorded frames oldest first. The returned slice is reused by
// the next call.
func (h *FrameHistory) Samples() []float32 {
	h.ordered = h.ordered[:0]
	if h.filled < len(h.samples) {
		h.ordered = append(h.ordered, h.samples[:h.filled]...)
		return h.ordered
	}
	h.ordered = append(h.ordered, h.samples[h.next:]...)
	h.ordered = append(h.ordered, h.samples[:h.next]...)
	return h.ordered
}

// StatsSource supplies scheduler statistics; *ecs.Scheduler satisfies it.
type StatsSource interface {
	GetStats() *ecs.SchedulerStats
}

// PerformanceWindow shows frame times, storage counts and per-system timings.
type PerformanceWindow struct {
	Title     string
	Storage   *ecs.Storage
	Scheduler StatsSource
	History   *FrameHistory

	lastFrame time.Time
}

// NewPerformanceWindow keeps historyFrames frames of timing history.
func NewPerformanceWindow(storage *ecs.Storage, scheduler StatsSource, historyFrames int) *PerformanceWindow {
	return &PerformanceWindow{
		Title:     "Performance",
		Storage:   storage,
		Scheduler: scheduler,
		History:   NewFrameHistory(historyFrames),
	}
}

// Tick records the wall time since the previous call.
func (p *PerformanceWindow) Tick(now time.Time) {
	if !p.lastFrame.IsZero() {
		p.History.Push(now.Sub(p.lastFrame).Seconds())
	}
	p.lastFrame = now
}

func (p *PerformanceWindow) Render() {
	p.Tick(time.Now())

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 420), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 280), imgui.CondOnce)
	if imgui.BeginV(p.Title, nil, imgui.WindowFlagsNone) {
		p.renderBody()
	}
	imgui.End()
}

func (p *PerformanceWindow) renderBody() {
	avg := p.History.Average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000/avg))
	}
	if samples := p.History.Samples(); len(samples) > 0 {
		imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))
	}

	stats := p.Storage.CollectStats()
	imgui.Text(fmt.Sprintf("Entities: %d  Archetypes: %d  Singletons: %d",
		stats.TotalEntityCount, stats.ArchetypeCount, stats.SingletonCount))

	if imgui.TreeNodeStr("Singletons") {
		for _, singletonType := range stats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}

	if p.Scheduler == nil {
		return
	}
	sched := p.Scheduler.GetStats()
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Ticks: %d  Executions: %d", sched.Ticks, sched.TotalExecutions))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("SystemStats", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Runs")
		imgui.TableSetupColumn("Skips")
		imgui.TableSetupColumn("Avg")
		imgui.TableHeadersRow()

		for _, sys := range sched.Systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(sys.Name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", sys.SkipCount))
			imgui.TableNextColumn()
			imgui.Text(sys.AvgDuration.String())
		}
		imgui.EndTable()
	}
}

// SpawnPerformanceWindow adds an entity that draws the window every tick.
func SpawnPerformanceWindow(storage *ecs.Storage, scheduler StatsSource) *PerformanceWindow {
	window := NewPerformanceWindow(storage, scheduler, 120)
	storage.Spawn(ImguiItem{Render: window.Render})
	return window
}
