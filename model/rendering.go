package model

import (
	"fmt"
	"io"
	"os"
	"os/exec"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	macosClearCmd = "clear"
)

// TerminalRenderer draws snapshots as text
type TerminalRenderer struct {
	Out io.Writer
}

func (r *TerminalRenderer) out() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

// Display renders the status line and the grid of a snapshot
func (r *TerminalRenderer) Display(s State) {
	w := r.out()
	fmt.Fprintf(w, "%s\n", s.Status().Hint())
	fmt.Fprintf(w, "Generation: %d | Population: %d\n\n", s.Generation, s.Population())
	r.DisplayGrid(s.Grid)
}

// DisplayGrid renders the grid alone
func (r *TerminalRenderer) DisplayGrid(g *Grid) {
	w := r.out()
	for row := range g.Rows() {
		for col := range g.Cols() {
			if alive, _ := g.Get(row, col); alive {
				fmt.Fprint(w, gridPosBlock)
			} else {
				fmt.Fprint(w, gridPosEmpty)
			}
		}
		fmt.Fprintln(w)
	}
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	cmd := exec.Command(macosClearCmd)
	cmd.Stdout = r.out()
	if err := cmd.Run(); err != nil {
		fmt.Fprintln(r.out(), "Error clearing terminal:", err)
	}
}
