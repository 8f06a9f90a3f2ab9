package document

import (
	"bufio"
	"io"
	"strings"

	"github.com/matzehuels/rnalayout/pkg/errors"
)

// ParseVienna reads molecules in Vienna text format from r.
//
// Each record is an optional ">name" header followed by a sequence line and
// an optional dot-bracket line. Lines starting with '#' and blank lines are
// skipped. A record without a structure line describes an unpaired molecule.
func ParseVienna(r io.Reader) ([]Molecule, error) {
	var (
		out  []Molecule
		cur  *Molecule
		line int
	)
	flush := func() {
		if cur != nil && (cur.Sequence != "" || cur.Structure != "") {
			out = append(out, *cur)
		}
		cur = nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		switch {
		case text == "" || strings.HasPrefix(text, "#"):
			continue
		case strings.HasPrefix(text, ">"):
			flush()
			cur = &Molecule{Name: strings.TrimSpace(text[1:])}
		case isStructureLine(text):
			if cur == nil || cur.Structure != "" {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: structure without a sequence", line)
			}
			cur.Structure = strings.Fields(text)[0]
		default:
			if cur == nil {
				cur = &Molecule{}
			}
			if cur.Structure != "" {
				flush()
				cur = &Molecule{}
			}
			cur.Sequence += text
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read vienna text")
	}
	flush()

	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "no molecules found")
	}
	return out, nil
}

func isStructureLine(text string) bool {
	switch text[0] {
	case '.', '(', ')', '[', ']', '{', '}', '<':
		return true
	}
	return false
}
