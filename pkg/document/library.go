package document

import (
	"io"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/rnalayout/pkg/errors"
)

// Library is a named collection of molecules stored as TOML.
type Library struct {
	Title     string     `toml:"title"`
	Molecules []Molecule `toml:"molecule"`
}

// Names returns the display name of every entry. Unnamed entries are labeled
// by their position.
func (l Library) Names() []string {
	names := make([]string, len(l.Molecules))
	for i, m := range l.Molecules {
		names[i] = m.DisplayName(i)
	}
	return names
}

// DisplayName returns the molecule name, or "molecule N" for the entry at
// position i when the name is empty.
func (m Molecule) DisplayName(i int) string {
	if m.Name != "" {
		return m.Name
	}
	return "molecule " + strconv.Itoa(i+1)
}

// ReadLibrary decodes a TOML library from r.
func ReadLibrary(r io.Reader) (Library, error) {
	var lib Library
	md, err := toml.NewDecoder(r).Decode(&lib)
	if err != nil {
		return Library{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode library")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Library{}, errors.New(errors.ErrCodeInvalidFormat, "unknown library key %q", undecoded[0].String())
	}
	if len(lib.Molecules) == 0 {
		return Library{}, errors.New(errors.ErrCodeInvalidFormat, "library has no [[molecule]] entries")
	}
	return lib, nil
}

// ReadLibraryFile decodes the TOML library at path.
func ReadLibraryFile(path string) (Library, error) {
	f, err := open(path)
	if err != nil {
		return Library{}, err
	}
	defer f.Close()
	return ReadLibrary(f)
}

// WriteLibrary encodes lib as TOML to w.
func WriteLibrary(w io.Writer, lib Library) error {
	return toml.NewEncoder(w).Encode(lib)
}
