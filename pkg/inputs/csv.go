// Package inputs loads the CSV tables produced by the preprocessing
// collaborators: regional data, subscription and smartphone forecasts, the
// capacity lookup and the core network lookup.
package inputs

import (
	"encoding/csv"
	"errors"
	"io"
	"os"

	"github.com/ChicagoDave/netviability/pkg/spec"
	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
)

// decodeFile decodes every row of a CSV file into T. Header names found in
// aliases are renamed before decoding. Missing columns and unparseable values
// are schema errors naming the file and row.
func decodeFile[T any](path string, aliases map[string]string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err == io.EOF {
		return nil, eris.Wrapf(spec.ErrSchema, "%s: empty file", path)
	}
	if err != nil {
		return nil, eris.Wrapf(spec.ErrSchema, "%s header: %v", path, err)
	}
	header = applyAliases(header, aliases)

	dec, err := csvutil.NewDecoder(r, header...)
	if err != nil {
		return nil, eris.Wrapf(spec.ErrSchema, "%s: %v", path, err)
	}
	dec.DisallowMissingColumns = true

	var out []T
	for row := 2; ; row++ {
		var v T
		err := dec.Decode(&v)
		if err == io.EOF {
			break
		}
		var missing *csvutil.MissingColumnsError
		if errors.As(err, &missing) {
			return nil, eris.Wrapf(spec.ErrSchema, "%s: missing columns %v", path, missing.Columns)
		}
		if err != nil {
			return nil, eris.Wrapf(spec.ErrSchema, "%s row %d: %v", path, row, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// applyAliases renames alias columns unless the canonical column is already present.
func applyAliases(header []string, aliases map[string]string) []string {
	if len(aliases) == 0 {
		return header
	}
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = h
		if canonical, ok := aliases[h]; ok && !present[canonical] {
			out[i] = canonical
		}
	}
	return out
}
