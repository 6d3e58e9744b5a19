package output

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/ChicagoDave/netviability/pkg/demand"
	"github.com/rotisserie/eris"
)

// Writer writes the result tables of each decision option and accumulates
// them for the combined all-options files.
type Writer struct {
	Dir      string
	Workbook bool

	order []string
	all   map[string]Rendered
}

// NewWriter returns a writer rooted at dir.
func NewWriter(dir string, workbook bool) *Writer {
	return &Writer{Dir: dir, Workbook: workbook, all: map[string]Rendered{}}
}

// WriteOption renders and writes every table for one decision option and
// returns the paths written.
func (w *Writer) WriteOption(decisionOption string, records []Record, demandRows []demand.YearRow) ([]string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "creating %s", w.Dir)
	}

	demandTable, err := RenderDemand(demandRows)
	if err != nil {
		return nil, err
	}
	names := []string{DemandTable}
	rendered := map[string]Rendered{DemandTable: demandTable}
	for _, t := range Tables {
		names = append(names, t.Name)
		rendered[t.Name] = Render(t, records)
	}

	var paths []string
	for _, name := range names {
		path := filepath.Join(w.Dir, name+"_"+decisionOption+".csv")
		if err := WriteCSV(path, rendered[name]); err != nil {
			return nil, err
		}
		paths = append(paths, path)
		w.accumulate(name, rendered[name].WithOption(decisionOption))
	}

	if w.Workbook {
		path := filepath.Join(w.Dir, "results_"+decisionOption+".xlsx")
		if err := WriteWorkbook(path, names, rendered); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (w *Writer) accumulate(name string, r Rendered) {
	prev, ok := w.all[name]
	if !ok {
		w.order = append(w.order, name)
		w.all[name] = r
		return
	}
	prev.Rows = append(prev.Rows, r.Rows...)
	w.all[name] = prev
}

// WriteAllOptions writes every table accumulated so far with its
// decision_option column.
func (w *Writer) WriteAllOptions() ([]string, error) {
	var paths []string
	for _, name := range w.order {
		path := filepath.Join(w.Dir, name+"_all_options.csv")
		if err := WriteCSV(path, w.all[name]); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// WriteCSV writes a rendered table atomically.
func WriteCSV(path string, r Rendered) error {
	return writeAtomic(path, func(f io.Writer) error {
		cw := csv.NewWriter(f)
		if err := cw.Write(r.Header); err != nil {
			return err
		}
		if err := cw.WriteAll(r.Rows); err != nil {
			return err
		}
		return cw.Error()
	})
}

// writeAtomic writes to a temporary file in the target directory and renames
// it into place, so readers never see a partial table.
func writeAtomic(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return eris.Wrapf(err, "creating temp file for %s", path)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return eris.Wrapf(err, "writing %s", path)
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrapf(err, "closing %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return eris.Wrapf(err, "renaming into %s", path)
	}
	return nil
}

// ReadCSV loads a written table back as header and rows.
func ReadCSV(path string) (Rendered, error) {
	f, err := os.Open(path)
	if err != nil {
		return Rendered{}, eris.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return Rendered{}, eris.Wrapf(err, "reading %s", path)
	}
	if len(rows) == 0 {
		return Rendered{}, nil
	}
	return Rendered{Header: rows[0], Rows: rows[1:]}, nil
}
