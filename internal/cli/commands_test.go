package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/rnalayout/pkg/document"
	"github.com/matzehuels/rnalayout/pkg/server"
)

const hairpinJSON = `{"name": "hp", "sequence": "GGGAAACCC", "structure": "(((...)))"}`

const twoRecords = `# two hairpins
>first
GGGAAACCC
(((...))) -1.2
>second one
GGAAACC
((...))
`

// isolate points the config and cache directories at fresh temp dirs.
func isolate(t *testing.T) (cacheHome string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cacheHome = t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	return cacheHome
}

// execute runs the root command with args and returns what it wrote to Out.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	errw := &syncBuffer{}
	c := New(errw, LogInfo)
	c.Out = &out
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(errw)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLayoutCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "hp.json", hairpinJSON)

	out, err := execute(t, "layout", input, "--coords", "3")
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}
	if !strings.Contains(out, "Layout complete") || !strings.Contains(out, "fresh") {
		t.Errorf("output = %q, want completion and fresh status", out)
	}
	if !strings.Contains(out, "6 more bases") {
		t.Errorf("output = %q, want truncated coordinate table", out)
	}

	l, err := document.ReadLayoutFile(filepath.Join(dir, "hp.layout.json"))
	if err != nil {
		t.Fatalf("ReadLayoutFile() error: %v", err)
	}
	if len(l.Bases) != 9 {
		t.Errorf("len(Bases) = %d, want 9", len(l.Bases))
	}
	if l.Name != "hp" {
		t.Errorf("Name = %q, want %q", l.Name, "hp")
	}

	out, err = execute(t, "layout", input)
	if err != nil {
		t.Fatalf("second layout error: %v", err)
	}
	if !strings.Contains(out, "cached") {
		t.Errorf("second run output = %q, want cached status", out)
	}
}

func TestLayoutCommandStdout(t *testing.T) {
	isolate(t)
	input := writeFile(t, t.TempDir(), "hp.json", hairpinJSON)

	out, err := execute(t, "layout", input, "-o", "-", "--pair-spacing", "30")
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}
	l, err := document.UnmarshalLayout([]byte(out))
	if err != nil {
		t.Fatalf("stdout is not a layout document: %v\n%s", err, out)
	}
	if l.PairSpacing != 30 {
		t.Errorf("PairSpacing = %v, want 30", l.PairSpacing)
	}
}

func TestLayoutCommandMultipleMolecules(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "pair.fa", twoRecords)

	if _, err := execute(t, "layout", input); err != nil {
		t.Fatalf("layout error: %v", err)
	}
	for _, name := range []string{"pair.first.layout.json", "pair.second-one.layout.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}

	if _, err := execute(t, "layout", input, "-o", "-"); err == nil {
		t.Error("writing several molecules to stdout should fail")
	}

	out, err := execute(t, "layout", input, "--name", "second one", "-o", "-")
	if err != nil {
		t.Fatalf("layout --name error: %v", err)
	}
	l, err := document.UnmarshalLayout([]byte(out))
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Bases) != 7 {
		t.Errorf("len(Bases) = %d, want 7", len(l.Bases))
	}

	if _, err := execute(t, "layout", input, "--name", "third"); err == nil {
		t.Error("unknown --name should fail")
	}
}

func TestLayoutCommandOutputDirectory(t *testing.T) {
	isolate(t)
	input := writeFile(t, t.TempDir(), "pair.fa", twoRecords)
	outDir := filepath.Join(t.TempDir(), "layouts")

	if _, err := execute(t, "layout", input, "-o", outDir, "--no-cache"); err != nil {
		t.Fatalf("layout error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "first.layout.json")); err != nil {
		t.Errorf("missing output in directory: %v", err)
	}
}

func TestLayoutCommandErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"layout", filepath.Join(dir, "missing.json")}},
		{"self pair", []string{"layout", writeFile(t, dir, "self.json", `{"pairs": [0]}`)}},
		{"pseudoknot in strict mode", []string{"layout", "--strict", writeFile(t, dir, "pk.json", `{"structure": "((..[[..))..]]"}`)}},
		{"bad spacing", []string{"layout", "--primary-spacing", "-1", writeFile(t, dir, "ok.json", hairpinJSON)}},
		{"no argument", []string{"layout"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLayoutCommandConfigSpacing(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "hp.json", hairpinJSON)
	cfg := writeFile(t, dir, "config.toml", "[layout]\nprimary_spacing = 20.0\n[cache]\nbackend = \"none\"\n")

	out, err := execute(t, "--config", cfg, "layout", input, "-o", "-")
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}
	l, err := document.UnmarshalLayout([]byte(out))
	if err != nil {
		t.Fatal(err)
	}
	if l.PrimarySpacing != 20 {
		t.Errorf("PrimarySpacing = %v, want 20 from config", l.PrimarySpacing)
	}
}

func TestTreeCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "hp.json", hairpinJSON)

	out, err := execute(t, "tree", input)
	if err != nil {
		t.Fatalf("tree error: %v", err)
	}
	if !strings.HasPrefix(out, "digraph LayoutTree {") {
		t.Errorf("tree output = %q, want DOT", out)
	}
	if !strings.Contains(out, "0-8") {
		t.Errorf("tree output should contain the outer pair 0-8:\n%s", out)
	}

	path := filepath.Join(dir, "tree.dot")
	if _, err := execute(t, "tree", input, "-o", path); err != nil {
		t.Fatalf("tree -o error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("tree file not written: %v", err)
	}
}

func TestTreeCommandErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	hp := writeFile(t, dir, "hp.json", hairpinJSON)
	multi := writeFile(t, dir, "multi.fa", twoRecords)

	if _, err := execute(t, "tree", hp, "-f", "png"); err == nil {
		t.Error("unknown format should fail")
	}
	if _, err := execute(t, "tree", multi); err == nil {
		t.Error("several molecules without --name should fail")
	}
	if _, err := execute(t, "tree", multi, "--name", "first"); err != nil {
		t.Errorf("tree --name error: %v", err)
	}
}

func TestFilterCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "filter", "((..[[..))..]]")
	if err != nil {
		t.Fatalf("filter error: %v", err)
	}
	if !strings.HasPrefix(out, "((......))....\n") {
		t.Errorf("filter output = %q, want filtered structure first", out)
	}
	if !strings.Contains(out, "Removed 2") || !strings.Contains(out, "4-13") {
		t.Errorf("filter output = %q, want removed pairs", out)
	}

	out, err = execute(t, "filter", "--json", "((..[[..))..]]")
	if err != nil {
		t.Fatalf("filter --json error: %v", err)
	}
	var resp server.FilterResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("filter --json output: %v", err)
	}
	if resp.Structure != "((......))...." || len(resp.Removed) != 2 {
		t.Errorf("response = %+v", resp)
	}

	out, err = execute(t, "filter", "(((...)))")
	if err != nil {
		t.Fatalf("filter error: %v", err)
	}
	if !strings.Contains(out, "No pseudoknots") {
		t.Errorf("filter output = %q, want no pseudoknots", out)
	}

	if _, err := execute(t, "filter", "(((..."); err == nil {
		t.Error("unbalanced structure should fail")
	}
}

func TestCacheCommands(t *testing.T) {
	cacheHome := isolate(t)

	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	if want := filepath.Join(cacheHome, appName) + "\n"; out != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}

	input := writeFile(t, t.TempDir(), "hp.json", hairpinJSON)
	if _, err := execute(t, "layout", input); err != nil {
		t.Fatal(err)
	}
	out, err = execute(t, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if !strings.Contains(out, "Cache cleared") {
		t.Errorf("cache clear output = %q", out)
	}
	out, err = execute(t, "layout", input)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "fresh") {
		t.Errorf("layout after clear = %q, want fresh", out)
	}
}

func TestCacheClearDisabled(t *testing.T) {
	isolate(t)
	cfg := writeFile(t, t.TempDir(), "config.toml", "[cache]\nbackend = \"none\"\n")

	out, err := execute(t, "--config", cfg, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if !strings.Contains(out, "disabled") {
		t.Errorf("output = %q, want disabled notice", out)
	}
}

func TestCompletionCommand(t *testing.T) {
	isolate(t)

	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, err := execute(t, "completion", shell)
		if err != nil {
			t.Fatalf("completion %s error: %v", shell, err)
		}
		if !strings.Contains(out, appName) {
			t.Errorf("completion %s output does not mention %s", shell, appName)
		}
	}
	if _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("unsupported shell should fail")
	}
}

func TestOutputPaths(t *testing.T) {
	one := []document.Molecule{{Name: "hp"}}
	two := []document.Molecule{{Name: "tRNA Phe"}, {}}

	tests := []struct {
		name   string
		output string
		mols   []document.Molecule
		want   []string
	}{
		{"single default", "", one, []string{"data/in.layout.json"}},
		{"single explicit", "out.json", one, []string{"out.json"}},
		{"several default", "", two, []string{"data/in.trna-phe.layout.json", "data/in.molecule-2.layout.json"}},
		{"several into directory", "out", two, []string{filepath.Join("out", "trna-phe.layout.json"), filepath.Join("out", "molecule-2.layout.json")}},
		{"colliding slugs", "", []document.Molecule{{Name: "tRNA 1"}, {Name: "trna-1"}, {Name: "TRNA.1"}},
			[]string{"data/in.trna-1.layout.json", "data/in.trna-1-2.layout.json", "data/in.trna.1.layout.json"}},
		{"same name twice", "out", []document.Molecule{{Name: "hp"}, {Name: "hp"}, {Name: "hp-2"}},
			[]string{filepath.Join("out", "hp.layout.json"), filepath.Join("out", "hp-2.layout.json"), filepath.Join("out", "hp-2-3.layout.json")}},
		{"punctuation only", "", []document.Molecule{{Name: "!!!"}, {Name: "?"}},
			[]string{"data/in.molecule-1.layout.json", "data/in.molecule-2.layout.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths("data/in.toml", tt.output, tt.mols)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("outputPaths() = %v, want %v", got, tt.want)
			}
		})
	}
}
