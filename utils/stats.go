package utils

import "time"

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	PeakPopulation       int
	TotalGenerations     int // across every board since start, restarts included
	Restarts             int
	StartTime            time.Time

	lastGeneration int
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Update records the snapshot at generation, reached duration after the previous one.
// A generation lower than the last one means the board was reset.
func (s *Stats) Update(generation int, population int, duration time.Duration) {
	if generation >= s.lastGeneration {
		s.TotalGenerations += generation - s.lastGeneration
	} else {
		s.TotalGenerations += generation
	}
	s.lastGeneration = generation
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}
	s.PeakPopulation = max(s.PeakPopulation, population)

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}

// Runtime returns the time since the stats were created
func (s *Stats) Runtime() time.Duration {
	return time.Since(s.StartTime)
}
