package document

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/rnalayout/pkg/errors"
	"github.com/matzehuels/rnalayout/pkg/rna"
)

// Molecule is the input document for one layout.
type Molecule struct {
	Name      string `json:"name,omitempty" toml:"name,omitempty"`
	Sequence  string `json:"sequence,omitempty" toml:"sequence,omitempty"`
	Structure string `json:"structure,omitempty" toml:"structure,omitempty"`
	Pairs     []int  `json:"pairs,omitempty" toml:"pairs,omitempty"`
}

// Parsed is a molecule whose sequence and structure have been validated.
type Parsed struct {
	Name      string
	Sequence  rna.Sequence
	Structure rna.Structure
}

// Parse validates m and returns its sequence and structure.
//
// Parse fails with INVALID_INPUT when both or neither of a structure and a
// sequence are present, or the name is malformed; with INVALID_SEQUENCE or
// INVALID_STRUCTURE when either part cannot be read; and with LENGTH_MISMATCH
// when sequence and structure disagree on the length.
func (m Molecule) Parse() (Parsed, error) {
	if m.Name != "" {
		if err := errors.ValidateName(m.Name); err != nil {
			return Parsed{}, err
		}
	}
	if m.Structure != "" && m.Pairs != nil {
		return Parsed{}, errors.New(errors.ErrCodeInvalidInput, "give either structure or pairs, not both")
	}

	seq, err := rna.ParseSequence(m.Sequence, rna.ParseOptions{})
	if err != nil {
		return Parsed{}, err
	}

	var s rna.Structure
	switch {
	case m.Structure != "":
		s, err = rna.ParseDotBracket(m.Structure)
	case m.Pairs != nil:
		s, err = rna.New(m.Pairs)
	case seq.Len() > 0:
		s = rna.Unstructured(seq.Len())
	default:
		return Parsed{}, errors.New(errors.ErrCodeInvalidInput, "molecule has neither sequence nor structure")
	}
	if err != nil {
		return Parsed{}, err
	}

	if m.Sequence == "" {
		seq = rna.NewSequence(make([]rna.Base, s.Len()))
	}
	if seq.Len() != s.Len() {
		return Parsed{}, errors.New(errors.ErrCodeLengthMismatch,
			"sequence has %d bases but structure has %d", seq.Len(), s.Len())
	}
	return Parsed{Name: m.Name, Sequence: seq, Structure: s}, nil
}

// DecodeMolecule reads one JSON molecule from r. It does not close r.
func DecodeMolecule(r io.Reader) (Molecule, error) {
	var m Molecule
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return Molecule{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode molecule")
	}
	return m, nil
}

// ReadMolecule reads a JSON molecule from the file at path.
func ReadMolecule(path string) (Molecule, error) {
	f, err := open(path)
	if err != nil {
		return Molecule{}, err
	}
	defer f.Close()
	return DecodeMolecule(f)
}

// ReadFile reads every molecule in the file at path. The format follows the
// extension: ".json" holds one molecule, ".toml" a library, and anything
// else is read as Vienna text.
func ReadFile(path string) ([]Molecule, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		m, err := ReadMolecule(path)
		if err != nil {
			return nil, err
		}
		return []Molecule{m}, nil
	case ".toml":
		lib, err := ReadLibraryFile(path)
		if err != nil {
			return nil, err
		}
		return lib.Molecules, nil
	}

	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseVienna(f)
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
