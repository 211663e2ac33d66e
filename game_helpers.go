package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-engine/model"
	"github.com/sheikhrachel/go-gol-engine/utils"
)

// initializeGame sets up the simulation, renderer and stats from the config
func initializeGame(config utils.Config) (
	*model.Simulation,
	*model.TerminalRenderer,
	*utils.Stats,
	error,
) {
	var opts []model.Option
	if config.UseParallel {
		opts = append(opts, model.WithParallelStep(config.Workers))
	}

	sim, err := model.NewSimulation(config.Rows, config.Cols, opts...)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "[initializeGame] failed to create simulation")
	}

	return sim, &model.TerminalRenderer{}, utils.NewStats(), nil
}

// newRand returns the RNG used to seed boards, time based when seed is 0
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// seedBoard places the configured patterns spread over the board, then sprinkles random cells
func seedBoard(sim *model.Simulation, config utils.Config, rng *rand.Rand) error {
	var patterns []model.Pattern
	for _, name := range config.Patterns {
		p, ok := model.LookupPattern(name)
		if !ok {
			return errors.Errorf("[seedBoard] unknown pattern: %s", name)
		}
		patterns = append(patterns, p)
	}

	grid := sim.State().Grid
	for i, p := range patterns {
		// lay patterns out along the diagonal
		row := (i+1)*grid.Rows()/(len(patterns)+1) - p.Height()/2
		col := (i+1)*grid.Cols()/(len(patterns)+1) - p.Width()/2
		if err := sim.Place(p, row, col); err != nil {
			fmt.Printf("Skipping pattern %s: %v\n", p.Name, err)
		}
	}

	if config.RandomDensity <= 0 {
		return nil
	}
	for row := range grid.Rows() {
		for col := range grid.Cols() {
			if rng.Float64() < config.RandomDensity {
				if err := sim.ActivateCell(row, col); err != nil {
					return errors.Wrap(err, "[seedBoard] failed to activate cell")
				}
			}
		}
	}
	return nil
}

// displayGameInfo shows the initial game information
func displayGameInfo(config utils.Config, state model.State) {
	fmt.Printf("Parallel: %v | Tick: %s | Max generations: %d\n",
		config.UseParallel, time.Duration(config.TickInterval), config.MaxGenerations)
	fmt.Printf("Grid: %dx%d | Initial living cells: %d\n",
		state.Grid.Rows(), state.Grid.Cols(), state.Population())
	fmt.Println("Press Ctrl+C to exit gracefully")
	fmt.Println()
}

// displayGameStatus shows the current game status
func displayGameStatus(state model.State, stats *utils.Stats) {
	density := float64(state.Population()) / float64(state.Grid.Rows()*state.Grid.Cols()) * 100
	fmt.Printf("Status: %s | Density: %.1f%% | Peak: %d\n",
		state.Status(), density, stats.PeakPopulation)
	fmt.Printf("Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs | Restarts: %d\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, stats.Runtime().Seconds(), stats.Restarts)
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(state model.State) (bool, string) {
	switch {
	case state.Generation > 0 && state.Population() == 0:
		return true, "extinction"
	case state.IsStillLife:
		return true, "still life reached"
	}
	return false, ""
}

// restartGame resets the board, reseeds it and resumes play
func restartGame(sim *model.Simulation, config utils.Config, rng *rand.Rand) error {
	sim.Reset()
	if err := seedBoard(sim, config, rng); err != nil {
		return err
	}
	sim.SetPaused(false)
	return nil
}
