package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sheikhrachel/go-gol-engine/model"
	"github.com/sheikhrachel/go-gol-engine/utils"
)

const configFile = "config.json"

func main() {
	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(configFile)
	if err != nil {
		fmt.Printf("Using default configuration: %v\n", err)
		config = utils.DefaultConfig()
	}

	sim, renderer, stats, err := initializeGame(config)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	rng := newRand(config.Seed)
	if err = seedBoard(sim, config, rng); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	displayGameInfo(config, sim.State())

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// render every new snapshot from here on
	lastFrame := time.Now()
	unsubscribe := sim.Subscribe(func(state model.State) {
		if state.IsPaused {
			// edits while seeding a restarted board
			return
		}
		stats.Update(state.Generation, state.Population(), time.Since(lastFrame))
		lastFrame = time.Now()
		renderer.Clear()
		displayGameStatus(state, stats)
		renderer.Display(state)
	})
	defer unsubscribe()

	sim.SetPaused(false)
	if err = run(ctx, sim, config, rng, stats); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	fmt.Printf("Final stats: %d generations in %.1f seconds\n",
		stats.TotalGenerations, stats.Runtime().Seconds())
	fmt.Printf("Average: %.1f gen/sec, %.1f avg population\n",
		stats.GenerationsPerSecond, stats.AveragePopulation)
}

// run advances one generation per tick until the context is done, the
// generation limit is hit, or the board settles without auto restart
func run(ctx context.Context, sim *model.Simulation, config utils.Config, rng *rand.Rand, stats *utils.Stats) error {
	ticker := time.NewTicker(time.Duration(config.TickInterval))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\n🛑 Shutting down gracefully...")
			return nil
		case <-ticker.C:
		}

		state := sim.State()
		if state.IsPaused {
			continue
		}

		if config.MaxGenerations > 0 && state.Generation >= config.MaxGenerations {
			fmt.Printf("\n🏁 Reached maximum generations limit (%d)\n", config.MaxGenerations)
			return nil
		}

		if shouldRestart, reason := checkRestartConditions(state); shouldRestart {
			if !config.AutoRestart {
				sim.SetPaused(true)
				fmt.Printf("\nStopped: %s\n", reason)
				return nil
			}
			fmt.Printf("🔄 Restarting due to %s...\n", reason)
			stats.Restarts++
			if err := restartGame(sim, config, rng); err != nil {
				return err
			}
			continue
		}

		sim.AdvanceGeneration()
	}
}
