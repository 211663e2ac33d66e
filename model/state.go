package model

// Status is the lifecycle status of a simulation, derived from its state
type Status int

const (
	// StatusReady is a fresh empty board, or a board that settled into a still life
	StatusReady Status = iota
	// StatusProgressing means generations are being advanced
	StatusProgressing
	// StatusPaused means the board has life but is not advancing
	StatusPaused
	// StatusDied means generations were played and nothing is left alive
	StatusDied
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusProgressing:
		return "progressing"
	case StatusPaused:
		return "paused"
	case StatusDied:
		return "died"
	default:
		return "unknown"
	}
}

// Hint returns the line shown to the player for the status
func (s Status) Hint() string {
	switch s {
	case StatusReady:
		return "Tap or drag on the board to place cells, then start"
	case StatusProgressing:
		return "Evolving..."
	case StatusDied:
		return "All cells died, reset to play again"
	default:
		return "Paused, press start to resume"
	}
}

// DeriveStatus computes the status from the raw state fields. Rows are checked in order:
//
//	still life                          -> ready
//	running                             -> progressing
//	paused, generation 0, empty         -> ready
//	paused, generation 0, populated     -> paused
//	paused, generation > 0, empty       -> died
//	anything else                       -> paused
func DeriveStatus(paused bool, generation, population int, stillLife bool) Status {
	switch {
	case stillLife:
		return StatusReady
	case !paused:
		return StatusProgressing
	case generation == 0 && population == 0:
		return StatusReady
	case generation == 0 && population > 0:
		return StatusPaused
	case generation > 0 && population == 0:
		return StatusDied
	default:
		return StatusPaused
	}
}

// State is an immutable snapshot of a simulation
type State struct {
	Grid        *Grid
	Generation  int
	IsPaused    bool
	IsStillLife bool
}

// Population returns the number of living cells in the snapshot, 0 for a State without a grid
func (s State) Population() int {
	if s.Grid == nil {
		return 0
	}
	return s.Grid.CountLivingCells()
}

// Status derives the lifecycle status of the snapshot
func (s State) Status() Status {
	return DeriveStatus(s.IsPaused, s.Generation, s.Population(), s.IsStillLife)
}
