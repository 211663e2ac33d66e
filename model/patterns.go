package model

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidPattern is returned when pattern text can't be parsed
var ErrInvalidPattern = errors.New("invalid pattern")

// Cell is a (row, col) offset inside a pattern
type Cell struct {
	Row, Col int
}

// Pattern is a named set of live cells relative to a top-left corner
type Pattern struct {
	Name  string
	Cells []Cell
}

// Height returns the number of rows spanned by the pattern
func (p Pattern) Height() int {
	h := 0
	for _, c := range p.Cells {
		h = max(h, c.Row+1)
	}
	return h
}

// Width returns the number of columns spanned by the pattern
func (p Pattern) Width() int {
	w := 0
	for _, c := range p.Cells {
		w = max(w, c.Col+1)
	}
	return w
}

// ParsePattern reads a pattern drawn with '#' or 'O' for live cells and '.' for dead ones,
// one row per line. Blank lines are skipped.
func ParsePattern(name, text string) (Pattern, error) {
	p := Pattern{Name: name}
	row := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for col, ch := range line {
			switch ch {
			case '#', 'O':
				p.Cells = append(p.Cells, Cell{Row: row, Col: col})
			case '.':
			default:
				return Pattern{}, errors.Wrapf(ErrInvalidPattern, "%s: unexpected %q at (%d,%d)", name, ch, row, col)
			}
		}
		row++
	}
	if len(p.Cells) == 0 {
		return Pattern{}, errors.Wrapf(ErrInvalidPattern, "%s: no live cells", name)
	}
	return p, nil
}

func mustParsePattern(name, text string) Pattern {
	p, err := ParsePattern(name, text)
	if err != nil {
		panic(err)
	}
	return p
}

// Built-in patterns
var (
	Block = mustParsePattern("block", `
		##
		##`)
	Beehive = mustParsePattern("beehive", `
		.##.
		#..#
		.##.`)
	Blinker = mustParsePattern("blinker", `###`)
	Toad    = mustParsePattern("toad", `
		.###
		###.`)
	Glider = mustParsePattern("glider", `
		.#.
		..#
		###`)
)

var builtinPatterns = map[string]Pattern{
	Block.Name:   Block,
	Beehive.Name: Beehive,
	Blinker.Name: Blinker,
	Toad.Name:    Toad,
	Glider.Name:  Glider,
}

// LookupPattern returns the built-in pattern with the given name
func LookupPattern(name string) (Pattern, bool) {
	p, ok := builtinPatterns[strings.ToLower(name)]
	return p, ok
}
