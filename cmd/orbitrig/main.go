package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/plus3/orbitrig/config"
	"github.com/plus3/orbitrig/ecs"
	"github.com/plus3/orbitrig/ecs/debugui"
	debugui_ebiten "github.com/plus3/orbitrig/ecs/debugui/ebiten"
	"github.com/plus3/orbitrig/rig"
)

type Game struct {
	world   *rig.World
	backend *ecs.Singleton[debugui_ebiten.ImguiBackend]
	capture *ecs.Singleton[debugui.ImguiInputState]
	input   inputAdapter
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	backend := g.backend.Get()
	backend.BeginFrame()
	g.input.poll(g.world.Input(), *g.capture.Get())
	g.world.Step(1 / float64(ebiten.TPS()))
	backend.EndFrame()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	state, _, camera, ok := g.world.Rig()
	subject, _, _, hasSubject := g.world.Subject()
	if ok && hasSubject {
		drawScene(screen, *camera, subject.Translation, state.Center)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f  camera %s", ebiten.ActualTPS(), vecText(camera.Translation)), 10, screen.Bounds().Dy()-20)
	}
	g.backend.Get().Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Get().Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func main() {
	configPath := flag.String("config", "", "YAML settings file; empty uses the built-in defaults.")
	width := flag.Int("width", 1280, "Window width.")
	height := flag.Int("height", 720, "Window height.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	backend := debugui_ebiten.NewImguiBackend("Orbit Rig", *width, *height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	opts := cfg.Options()
	opts.Components = debugui.RegisterComponents
	opts.After = []ecs.System{&debugui.ImguiSystem{}}
	world := rig.NewWorld(opts)

	storage := world.Storage
	ecs.NewSingleton(storage, backend)
	inspector := &rigInspector{world: world, reset: opts.Setup.Rig}
	storage.Spawn(debugui.ImguiItem{Render: inspector.Render})
	debugui.SpawnPerformanceWindow(storage, world.Scheduler)
	debugui.SpawnEntityInspector(storage)

	game := &Game{
		world:   world,
		backend: ecs.NewSingleton[debugui_ebiten.ImguiBackend](storage),
		capture: ecs.NewSingleton[debugui.ImguiInputState](storage),
	}

	log.Println("Hold right mouse to orbit, left control to pan, left shift or scroll to zoom; WASD and space move the subject.")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("Game exited: %v", err)
	}
}
