package formulas

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Coord identifies a cell. Row is the row number as written and Col is the
// column counted from A = 1, so "C5" is Coord{Row: 5, Col: 3}. Coords are
// comparable and may be used as map keys.
type Coord struct {
	Row int
	Col int
}

// String returns the coordinate in A1 form. Coordinates with no column
// letters, i.e. Col < 1, are written as R1C0.
func (c Coord) String() string {
	if c.Col < 1 {
		return "R" + strconv.Itoa(c.Row) + "C" + strconv.Itoa(c.Col)
	}
	return ColumnName(c.Col) + strconv.Itoa(c.Row)
}

// Compare orders coordinates by row, then column. It returns -1, 0, or +1.
func (c Coord) Compare(d Coord) int {
	switch {
	case c.Row < d.Row:
		return -1
	case c.Row > d.Row:
		return 1
	case c.Col < d.Col:
		return -1
	case c.Col > d.Col:
		return 1
	default:
		return 0
	}
}

// ColumnName returns the column letters for a column number, the inverse of
// the decoding used for cell references: 1 is A, 26 is Z, 27 is AA. The
// result is empty if col < 1.
func ColumnName(col int) string {
	var b [16]byte
	i := len(b)
	for col > 0 {
		col--
		i--
		b[i] = byte('A' + col%26)
		col /= 26
	}
	return string(b[i:])
}

// ParseCoord parses a single cell reference like "B12", ignoring surrounding
// whitespace.
func ParseCoord(s string) (Coord, error) {
	scan := lex(strings.NewReader(s))
	tok, err := scan.next("")
	if err != nil {
		return Coord{}, syntaxError(err)
	}
	if tok.kind != tokenCell {
		return Coord{}, syntaxError(unexpected(tok, "cell reference"))
	}
	end, err := scan.next("")
	if err != nil {
		return Coord{}, syntaxError(err)
	}
	if end.kind != tokenEOF {
		return Coord{}, syntaxError(unexpected(end, "end of input"))
	}
	letters, digits := splitCell(tok.text)
	c, err := resolveCoord(letters, digits)
	if err != nil {
		return Coord{}, cellRefError(tok, err)
	}
	return c, nil
}

// splitCell splits cell reference text into its column letters and row
// digits. The lexer guarantees the shape.
func splitCell(text string) (letters, digits string) {
	k := strings.IndexFunc(text, func(r rune) bool { return '0' <= r && r <= '9' })
	if k < 0 {
		return text, ""
	}
	return text[:k], text[k:]
}

var (
	errColumnChar  = errors.New("invalid column character")
	errColumnRange = errors.New("column out of range")
	errNoColumn    = errors.New("missing column")
)

// resolveCoord converts the column letters and row digits of a cell
// reference to a Coord. Columns are bijective base 26 with A..Z as 1..26, in
// either case.
func resolveCoord(letters, digits string) (Coord, error) {
	col, err := resolveColumn(letters)
	if err != nil {
		return Coord{}, err
	}
	row, err := strconv.Atoi(digits)
	if err != nil {
		return Coord{}, err
	}
	return Coord{Row: row, Col: col}, nil
}

func resolveColumn(letters string) (int, error) {
	if letters == "" {
		return 0, errNoColumn
	}
	col := 0
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		var v int
		switch {
		case 'A' <= c && c <= 'Z':
			v = int(c-'A') + 1
		case 'a' <= c && c <= 'z':
			v = int(c-'a') + 1
		default:
			return 0, errColumnChar
		}
		if col > (math.MaxInt-v)/26 {
			return 0, errColumnRange
		}
		col = col*26 + v
	}
	return col, nil
}
