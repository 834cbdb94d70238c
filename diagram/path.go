package diagram

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/gogpu/gef/geom"
)

// ParsePath parses absolute SVG-like path data. Supported commands are
// M (move), L (line), Q (quadratic), C (cubic) and Z (close); a command
// letter may be followed by several coordinate groups.
func ParsePath(s string) (*geom.Path, error) {
	tokens := tokenizePath(s)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty path")
	}

	p := geom.NewPath()
	var (
		cmd     byte
		started bool
	)
	for i := 0; i < len(tokens); {
		if t := tokens[i]; len(t) == 1 && unicode.IsLetter(rune(t[0])) {
			cmd = byte(unicode.ToUpper(rune(t[0])))
			i++
			if cmd == 'Z' {
				if !started {
					return nil, fmt.Errorf("close before move")
				}
				p.Close()
				continue
			}
		}

		var n int
		switch cmd {
		case 'M', 'L':
			n = 2
		case 'Q':
			n = 4
		case 'C':
			n = 6
		case 0:
			return nil, fmt.Errorf("path must start with a command, got %q", tokens[i])
		default:
			return nil, fmt.Errorf("unsupported path command %q", cmd)
		}
		if cmd != 'M' && !started {
			return nil, fmt.Errorf("%c before move", cmd)
		}
		if i+n > len(tokens) {
			return nil, fmt.Errorf("%c needs %d coordinates", cmd, n)
		}
		v := make([]float64, n)
		for j := range v {
			f, err := strconv.ParseFloat(tokens[i+j], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid coordinate %q", tokens[i+j])
			}
			v[j] = f
		}
		i += n

		switch cmd {
		case 'M':
			p.MoveTo(v[0], v[1])
			started = true
			cmd = 'L' // coordinates after M are implicit lines
		case 'L':
			p.LineTo(v[0], v[1])
		case 'Q':
			p.QuadraticTo(v[0], v[1], v[2], v[3])
		case 'C':
			p.CubicTo(v[0], v[1], v[2], v[3], v[4], v[5])
		}
	}
	return p, nil
}

// tokenizePath splits path data into command letters and numbers.
func tokenizePath(s string) []string {
	var tokens []string
	for _, f := range strings.FieldsFunc(s, func(r rune) bool { return unicode.IsSpace(r) || r == ',' }) {
		start := 0
		for i, r := range f {
			if unicode.IsLetter(r) && r != 'e' && r != 'E' {
				if i > start {
					tokens = append(tokens, f[start:i])
				}
				tokens = append(tokens, string(r))
				start = i + 1
			}
		}
		if start < len(f) {
			tokens = append(tokens, f[start:])
		}
	}
	return tokens
}
