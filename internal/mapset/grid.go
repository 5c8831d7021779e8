package mapset

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Grid symbols.
const (
	Wall     = 'X'
	Free     = '.'
	Human    = '@'
	Entrance = 'E'
)

// Pos is a zero-based grid coordinate, x growing right and y growing down.
type Pos struct {
	X, Y int
}

// Grid is a parsed, validated rescue map. Cells is indexed [y][x].
type Grid struct {
	Cells    [][]rune
	Width    int
	Height   int
	Entrance Pos
	Human    Pos
}

// FormatError describes why a map file is not a valid grid.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string { return e.Reason }

func formatErrorf(format string, args ...any) *FormatError {
	return &FormatError{Reason: fmt.Sprintf(format, args...)}
}

// Parse reads a map from r and validates it: only the four grid symbols are
// allowed, all rows must have equal width, there must be exactly one human
// and exactly one entrance, and the entrance must lie on the grid border.
// Trailing blank lines are ignored, matching how the maps are authored.
func Parse(r io.Reader) (*Grid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, formatErrorf("map is not valid UTF-8")
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, formatErrorf("map is empty")
	}

	g := &Grid{Height: len(lines)}
	g.Cells = make([][]rune, len(lines))
	for y, line := range lines {
		g.Cells[y] = []rune(line)
	}
	g.Width = len(g.Cells[0])

	var humans, entrances []Pos
	for y, row := range g.Cells {
		if len(row) != g.Width {
			return nil, formatErrorf("row %d has width %d, want %d", y, len(row), g.Width)
		}
		for x, c := range row {
			switch c {
			case Wall, Free:
			case Human:
				humans = append(humans, Pos{X: x, Y: y})
			case Entrance:
				entrances = append(entrances, Pos{X: x, Y: y})
			default:
				return nil, formatErrorf("invalid symbol %q at (%d, %d)", c, x, y)
			}
		}
	}

	if len(entrances) != 1 {
		return nil, formatErrorf("want exactly one entrance 'E', found %d", len(entrances))
	}
	if len(humans) != 1 {
		return nil, formatErrorf("want exactly one human '@', found %d", len(humans))
	}

	g.Entrance = entrances[0]
	g.Human = humans[0]

	onBorder := g.Entrance.X == 0 || g.Entrance.X == g.Width-1 ||
		g.Entrance.Y == 0 || g.Entrance.Y == g.Height-1
	if !onBorder {
		return nil, formatErrorf("entrance must lie on the border, found at (%d, %d)",
			g.Entrance.X, g.Entrance.Y)
	}

	return g, nil
}

// Load parses the map file at path.
func Load(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}
