package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/rnalayout/pkg/cache"
	"github.com/matzehuels/rnalayout/pkg/document"
	"github.com/matzehuels/rnalayout/pkg/errors"
	"github.com/matzehuels/rnalayout/pkg/observability"
)

// Parse validates a molecule document and checks it against opts.MaxLength.
func Parse(ctx context.Context, mol document.Molecule, opts Options) (document.Parsed, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return document.Parsed{}, err
	}

	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, mol.Name)
	start := time.Now()

	parsed, err := mol.Parse()
	if err == nil {
		err = errors.ValidateLength(parsed.Structure.Len(), opts.MaxLength)
	}
	hooks.OnParseComplete(ctx, mol.Name, parsed.Structure.Len(), time.Since(start), err)
	if err != nil {
		return document.Parsed{}, err
	}

	opts.Logger.Debug("parsed molecule",
		"name", parsed.Name,
		"length", parsed.Structure.Len(),
		"pairs", parsed.Structure.NumPairs())
	return parsed, nil
}

// InputHash returns the content hash of a parsed molecule. Molecules with the
// same name, sequence and structure hash identically regardless of how the
// structure was written.
func InputHash(p document.Parsed) string {
	data, _ := json.Marshal(struct {
		Name     string `json:"name"`
		Sequence string `json:"sequence"`
		Pairs    []int  `json:"pairs"`
	}{p.Name, p.Sequence.String(), p.Structure.Pairs()})
	return cache.Hash(data)
}
