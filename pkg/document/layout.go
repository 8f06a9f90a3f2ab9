package document

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/google/uuid"

	"github.com/matzehuels/rnalayout/pkg/errors"
	"github.com/matzehuels/rnalayout/pkg/layout"
	"github.com/matzehuels/rnalayout/pkg/rna"
)

// Layout is the output document for one computed layout.
type Layout struct {
	ID             string     `json:"id"`
	Name           string     `json:"name,omitempty"`
	Sequence       string     `json:"sequence"`
	Structure      string     `json:"structure,omitempty"`
	PrimarySpacing float64    `json:"primary_spacing"`
	PairSpacing    float64    `json:"pair_spacing"`
	Bases          []Base     `json:"bases"`
	Bounds         Box        `json:"bounds"`
	RemovedPairs   []rna.Pair `json:"removed_pairs,omitempty"`
}

// Base is the placement of one base. PairType names the pair a paired base
// belongs to, read 5' to 3' (for example "GC" or "GU"), and is empty for
// unpaired bases and pairs with an unknown base.
type Base struct {
	Index    int     `json:"index"`
	Base     string  `json:"base"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Partner  int     `json:"partner"`
	PairType string  `json:"pair_type,omitempty"`
	Rotation int     `json:"rotation"`
}

// Box is the bounding box of a layout.
type Box struct {
	X layout.Bounds `json:"x"`
	Y layout.Bounds `json:"y"`
}

// Source describes the input a layout was computed from.
type Source struct {
	Name           string
	Sequence       rna.Sequence
	Structure      rna.Structure
	PrimarySpacing float64
	PairSpacing    float64
	// RemovedPairs lists pseudoknotted pairs dropped before layout.
	RemovedPairs []rna.Pair
}

// FromResult builds the output document for res. The sequence and structure
// in src must have the same length as res.
func FromResult(src Source, res layout.Result) Layout {
	db, err := src.Structure.DotBracket()
	if err != nil {
		db = ""
	}
	doc := Layout{
		ID:             LayoutID(src),
		Name:           src.Name,
		Sequence:       src.Sequence.String(),
		Structure:      db,
		PrimarySpacing: src.PrimarySpacing,
		PairSpacing:    src.PairSpacing,
		Bases:          make([]Base, res.Len()),
		Bounds:         Box{X: res.BoundsX, Y: res.BoundsY},
		RemovedPairs:   src.RemovedPairs,
	}
	for i := range res.Len() {
		doc.Bases[i] = Base{
			Index:    i,
			Base:     src.Sequence.At(i).String(),
			X:        res.X[i],
			Y:        res.Y[i],
			Partner:  src.Structure.Partner(i),
			PairType: pairType(src, i),
			Rotation: int(res.RotationSigns[i]),
		}
	}
	return doc
}

// pairType classifies the pair holding base i.
func pairType(src Source, i int) string {
	j := src.Structure.Partner(i)
	if j == rna.Unpaired || src.Sequence.Len() != src.Structure.Len() {
		return ""
	}
	a, b := src.Sequence.At(min(i, j)), src.Sequence.At(max(i, j))
	if a == rna.Undefined || b == rna.Undefined {
		return ""
	}
	return rna.ClassifyPair(a, b).String()
}

// LayoutID returns a stable identifier for the layout of src: the same name,
// sequence, structure and spacings always yield the same ID.
func LayoutID(src Source) string {
	key := src.Name + "\x00" + src.Sequence.String() + "\x00" + fmt.Sprint(src.Structure.Pairs()) + "\x00" +
		strconv.FormatFloat(src.PrimarySpacing, 'g', -1, 64) + "\x00" +
		strconv.FormatFloat(src.PairSpacing, 'g', -1, 64)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}

// Result converts the document back into a [layout.Result].
func (l Layout) Result() layout.Result {
	res := layout.Result{
		X:             make([]float64, len(l.Bases)),
		Y:             make([]float64, len(l.Bases)),
		BoundsX:       l.Bounds.X,
		BoundsY:       l.Bounds.Y,
		RotationSigns: make([]layout.Rotation, len(l.Bases)),
	}
	for i, b := range l.Bases {
		res.X[i], res.Y[i] = b.X, b.Y
		res.RotationSigns[i] = layout.Rotation(b.Rotation)
	}
	return res
}

// MarshalLayout encodes l as indented JSON.
func MarshalLayout(l Layout) ([]byte, error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode layout: %w", err)
	}
	return data, nil
}

// UnmarshalLayout decodes a layout document and checks that its bases are
// listed in index order.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout")
	}
	for i, b := range l.Bases {
		if b.Index != i {
			return Layout{}, errors.New(errors.ErrCodeInvalidFormat, "base %d listed at position %d", b.Index, i)
		}
	}
	return l, nil
}

// WriteLayout writes l as indented JSON to w, followed by a newline.
func WriteLayout(w io.Writer, l Layout) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// WriteLayoutFile writes l to the file at path, replacing any existing file.
func WriteLayoutFile(path string, l Layout) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadLayoutFile reads a layout document from the file at path.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Layout{}, errors.Wrap(errors.ErrCodeNotFound, err, "read %s", path)
	}
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
