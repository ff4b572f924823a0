package main

import (
	"context"
	"flag"
	"log"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/handblast/config"
	"github.com/plus3/handblast/game"
	"github.com/plus3/handblast/internal/ecs"
	"github.com/plus3/handblast/internal/ecs/debugui"
	debugui_ebiten "github.com/plus3/handblast/internal/ecs/debugui/ebiten"
	"github.com/plus3/handblast/layout"
	"github.com/plus3/handblast/puzzle"
	"github.com/plus3/handblast/scorestore"
	"github.com/plus3/handblast/tracking"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	flag.StringVar(&cfg.ScoreBackend, "score-backend", cfg.ScoreBackend, "Where the best score is kept: file or sqlite.")
	flag.StringVar(&cfg.ScorePath, "score-path", cfg.ScorePath, "Path of the score file or database.")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for piece generation, 0 for a random seed.")
	flag.Float64Var(&cfg.Smoothing, "smoothing", cfg.Smoothing, "Weight of the previous pointer position.")
	flag.Float64Var(&cfg.PinchDistance, "pinch", cfg.PinchDistance, "Fingertip distance, in pixels, below which the hand pinches.")
	flag.BoolVar(&cfg.DebugUI, "debug", cfg.DebugUI, "Show the debug UI.")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	var (
		store    puzzle.ScoreStore
		recorder game.Recorder
		saver    game.GameSaver
	)
	switch cfg.ScoreBackend {
	case config.BackendSQLite:
		db, err := scorestore.OpenSQLite(cfg.ScorePath)
		if err != nil {
			log.Fatalf("score store: %v", err)
		}
		defer db.Close()
		store, recorder, saver = db, db, db
	default:
		store = scorestore.NewFile(cfg.ScorePath)
	}

	opts := []puzzle.Option{
		puzzle.WithErrorHandler(func(err error) { log.Printf("score store: %v", err) }),
	}
	if cfg.Seed != 0 {
		opts = append(opts, puzzle.WithSeed(cfg.Seed))
	}
	engine := puzzle.New(store, opts...)

	screen := layout.Default()
	hand := &MouseHand{Spread: int(2*cfg.PinchDistance) + 1}

	var registerComponents []func(*ecs.ComponentRegistry)
	if cfg.DebugUI {
		registerComponents = append(registerComponents, debugui.Register)
	}

	world := game.NewWorld(game.Options{
		Engine:   engine,
		Source:   hand,
		Tracker:  tracking.NewTracker(cfg.Smoothing, cfg.PinchDistance),
		Layout:   screen,
		Recorder: recorder,
		OnError:  func(err error) { log.Printf("game: %v", err) },
	}, registerComponents...)

	ctx := context.Background()
	if saver != nil {
		resumed, err := world.ResumeSaved(ctx, saver)
		if err != nil {
			log.Printf("resume saved game: %v", err)
		} else if resumed {
			log.Printf("saved game %s restored, score %d", world.Match().RunID, engine.Score())
		}
	}

	g := &Game{
		World:  world,
		Screen: ecs.NewSingleton[Screen](world.Storage),
	}

	if cfg.DebugUI {
		backend := ebitenbackend.NewEbitenBackend()
		backend.CreateWindow("Hand Blast", screen.Width, screen.Height)
		imgui.CurrentIO().SetIniFilename("")

		g.ImguiBackend = ecs.NewSingleton[debugui_ebiten.ImguiBackend](world.Storage, debugui_ebiten.ImguiBackend{
			EbitenBackend: backend,
		})
		hand.Capture = ecs.NewSingleton[debugui.ImguiInputState](world.Storage)

		world.Scheduler.Register(&debugui.ImguiSystem{})
		spawnEngineWindow(world)
		spawnSchedulerWindow(world)
	}

	g.RenderScheduler = ecs.NewScheduler(world.Storage)
	g.RenderScheduler.Register(&RenderSystem{})

	ebiten.SetWindowSize(screen.Width, screen.Height)
	ebiten.SetWindowTitle("Hand Blast")

	log.Printf("starting: best score %d, backend %s", engine.Best(), cfg.ScoreBackend)
	err = ebiten.RunGame(g)
	if saver != nil {
		if err := world.Suspend(ctx, saver); err != nil {
			log.Printf("save game: %v", err)
		}
	}
	if err != nil {
		log.Fatalf("run: %v", err)
	}
}

func (g *Game) Update() error {
	if g.ImguiBackend != nil {
		g.ImguiBackend.Get().BeginFrame()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.World.Engine().Acknowledge()
	}
	g.World.Tick(1.0 / 60.0)

	if g.ImguiBackend != nil {
		g.ImguiBackend.Get().EndFrame()
	}

	if g.World.QuitRequested() {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.Screen.Get().Image = screen
	g.RenderScheduler.Once(0)

	if g.ImguiBackend != nil {
		g.ImguiBackend.Get().Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	l := g.World.Layout()
	if g.ImguiBackend != nil {
		g.ImguiBackend.Get().Layout(l.Width, l.Height)
	}
	return l.Width, l.Height
}
