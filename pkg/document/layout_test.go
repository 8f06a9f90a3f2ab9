package document

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/matzehuels/rnalayout/pkg/errors"
	"github.com/matzehuels/rnalayout/pkg/layout"
)

func buildSource(t *testing.T, m Molecule) (Source, layout.Result) {
	t.Helper()
	p, err := m.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res, err := layout.Build(p.Structure.Pairs(), p.Structure.Len(), 45, 45)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	src := Source{
		Name:           p.Name,
		Sequence:       p.Sequence,
		Structure:      p.Structure,
		PrimarySpacing: 45,
		PairSpacing:    45,
	}
	return src, res
}

func TestFromResult(t *testing.T) {
	src, res := buildSource(t, Molecule{Name: "h", Sequence: "GGAAACC", Structure: "((...))"})
	doc := FromResult(src, res)

	if _, err := uuid.Parse(doc.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", doc.ID, err)
	}
	if doc.Structure != "((...))" || doc.Sequence != "GGAAACC" || doc.Name != "h" {
		t.Errorf("FromResult() header = %q %q %q", doc.Name, doc.Sequence, doc.Structure)
	}
	if len(doc.Bases) != 7 {
		t.Fatalf("len(Bases) = %d, want 7", len(doc.Bases))
	}
	first := doc.Bases[0]
	if first.Base != "G" || first.Partner != 6 || first.Rotation != 1 || first.X != res.X[0] || first.Y != res.Y[0] {
		t.Errorf("Bases[0] = %+v", first)
	}
	if doc.Bases[3].Partner != -1 {
		t.Errorf("Bases[3].Partner = %d, want -1", doc.Bases[3].Partner)
	}
	if doc.Bounds.X != res.BoundsX || doc.Bounds.Y != res.BoundsY {
		t.Errorf("Bounds = %+v, want %+v %+v", doc.Bounds, res.BoundsX, res.BoundsY)
	}
}

func TestFromResultPairTypes(t *testing.T) {
	tests := []struct {
		name string
		mol  Molecule
		want []string
	}{
		{"canonical and non-canonical", Molecule{Sequence: "GUAAAUC", Structure: "((...))"},
			[]string{"GC", "NC", "", "", "", "NC", "GC"}},
		{"wobble and AU", Molecule{Sequence: "GAAAAUU", Structure: "((...))"},
			[]string{"GU", "AU", "", "", "", "AU", "GU"}},
		{"no sequence", Molecule{Structure: "((...))"},
			[]string{"", "", "", "", "", "", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, res := buildSource(t, tt.mol)
			doc := FromResult(src, res)
			for i, want := range tt.want {
				if got := doc.Bases[i].PairType; got != want {
					t.Errorf("Bases[%d].PairType = %q, want %q", i, got, want)
				}
			}
		})
	}
}

func TestLayoutIDStable(t *testing.T) {
	src, _ := buildSource(t, Molecule{Sequence: "GGAAACC", Structure: "((...))"})
	if LayoutID(src) != LayoutID(src) {
		t.Error("LayoutID is not stable")
	}
	other := src
	other.PairSpacing = 30
	if LayoutID(src) == LayoutID(other) {
		t.Error("LayoutID ignores pair spacing")
	}
	renamed := src
	renamed.Name = "hairpin"
	if LayoutID(src) == LayoutID(renamed) {
		t.Error("LayoutID ignores the molecule name")
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	src, res := buildSource(t, Molecule{Sequence: "GGGAAACCCA", Structure: "(((...)))."})
	doc := FromResult(src, res)

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteLayoutFile(path, doc); err != nil {
		t.Fatalf("WriteLayoutFile: %v", err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile: %v", err)
	}
	if got.ID != doc.ID || len(got.Bases) != len(doc.Bases) {
		t.Fatalf("round trip = %+v", got)
	}
	back := got.Result()
	for i := range res.Len() {
		if back.X[i] != res.X[i] || back.Y[i] != res.Y[i] || back.RotationSigns[i] != res.RotationSigns[i] {
			t.Errorf("base %d = (%v, %v), want (%v, %v)", i, back.X[i], back.Y[i], res.X[i], res.Y[i])
		}
	}
}

func TestWriteLayout(t *testing.T) {
	src, res := buildSource(t, Molecule{Structure: "(.)"})
	var buf bytes.Buffer
	if err := WriteLayout(&buf, FromResult(src, res)); err != nil {
		t.Fatalf("WriteLayout: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"primary_spacing": 45`, `"partner": 2`, `"bounds"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "}\n") {
		t.Error("output does not end with a newline")
	}
}

func TestUnmarshalLayoutErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want errors.Code
	}{
		{"not json", "{", errors.ErrCodeInvalidFormat},
		{"out of order", `{"bases":[{"index":1},{"index":0}]}`, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalLayout([]byte(tt.data)); !errors.Is(err, tt.want) {
				t.Errorf("UnmarshalLayout() error = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestReadLayoutFileMissing(t *testing.T) {
	_, err := ReadLayoutFile(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("ReadLayoutFile() error = %v, want NOT_FOUND", err)
	}
}
