package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/kamstrup/intmap"
	"github.com/plus3/handblast/config"
	"github.com/plus3/handblast/game"
	"github.com/plus3/handblast/layout"
	"github.com/plus3/handblast/puzzle"
	"github.com/plus3/handblast/scorestore"
	"github.com/plus3/handblast/tracking"
)

const tickDelta = 1.0 / 60.0

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	duration := flag.Duration("duration", 10*time.Second, "The longest the simulation may run for.")
	games := flag.Int("games", 0, "Stop after this many finished games, 0 to run for the full duration.")
	seed := flag.Uint64("seed", cfg.Seed, "Seed for pieces and bot moves, 0 for a random seed.")
	dbPath := flag.String("db", "", "Record every finished run into this SQLite database.")
	top := flag.Int("top", 5, "Number of best recorded runs to list when -db is set.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	if *seed == 0 {
		*seed = rand.Uint64()
	}

	log.Printf("Starting simulation with seed %d...\n", *seed)

	var recorder game.Recorder
	var db *scorestore.SQLite
	if *dbPath != "" {
		db, err = scorestore.OpenSQLite(*dbPath)
		if err != nil {
			log.Fatalf("Failed to open run database: %v", err)
		}
		defer db.Close()
		recorder = db
	}

	store := &puzzle.MemoryStore{}
	engine := puzzle.New(store,
		puzzle.WithSeed(*seed),
		puzzle.WithErrorHandler(func(err error) { log.Printf("score store: %v", err) }),
	)
	bot := &game.Autoplayer{
		Engine:        engine,
		Layout:        layout.Default(),
		Rand:          rand.New(rand.NewPCG(*seed, ^*seed)),
		PinchDistance: cfg.PinchDistance,
	}
	world := game.NewWorld(game.Options{
		Engine:   engine,
		Source:   bot,
		Tracker:  tracking.NewTracker(0, cfg.PinchDistance),
		Recorder: recorder,
		OnError:  func(err error) { log.Printf("record run: %v", err) },
	})

	report := &Report{
		Duration:       *duration,
		Seed:           *seed,
		GCPauseMetrics: *gcPauseMetrics,
		TickTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}
	histogram := intmap.New[int, int](64)

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running for up to %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			tickStart := time.Now()
			world.Tick(tickDelta)
			report.TickTime.Samples = append(report.TickTime.Samples, time.Since(tickStart))
			report.TotalTicks++

			if engine.State() != puzzle.StateGameOver {
				continue
			}

			// the run record system has seen this game over by now
			report.addGame(engine.Score(), engine.Stats())
			bucket := engine.Score() / BucketWidth
			n, _ := histogram.Get(bucket)
			histogram.Put(bucket, n+1)
			engine.Acknowledge()

			if *games > 0 && report.Games >= *games {
				break Loop
			}
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TickTime.Finalize()
	report.Histogram = buckets(histogram)
	report.BestSaves = store.Saves
	runtime.ReadMemStats(&report.MemStatsEnd)

	if db != nil {
		runs, err := db.TopRuns(context.Background(), *top)
		if err != nil {
			log.Printf("Failed to read top runs: %v", err)
		}
		report.TopRuns = runs
	}

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Simulation Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
