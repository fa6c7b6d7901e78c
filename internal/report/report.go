// Package report prints a completeness and quality summary of an exported
// faculty CSV file.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrNotFound is returned by Load when the export does not exist yet.
var ErrNotFound = errors.New("export file not found, run `facultyctl scrape` first")

const (
	sampleCount = 3
	sampleRunes = 90
	urlColumn   = "profile_url"
)

// SampleColumns are the free-text columns whose content is sampled.
var SampleColumns = []string{"specialization", "teaching", "bio", "research"}

// Table is a loaded CSV file. Rows may be shorter than Header.
type Table struct {
	Header []string
	Rows   [][]string
}

// Column holds emptiness counts for one CSV column. Missing counts empty
// cells, Blank counts cells holding only whitespace.
type Column struct {
	Name         string
	Missing      int
	Blank        int
	TotalEmpty   int
	Completeness float64
}

type Report struct {
	Records       int
	Columns       []Column
	Samples       map[string][]string
	HasURLColumn  bool
	DuplicateURLs int
}

// Load reads a CSV export with a header row.
func Load(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Table{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Table{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return Table{}, fmt.Errorf("read %s: no header row", path)
	}
	return Table{Header: records[0], Rows: records[1:]}, nil
}

func (t Table) cell(row []string, col int) string {
	if col < len(row) {
		return row[col]
	}
	return ""
}

// Build computes the report for t.
func Build(t Table) Report {
	rep := Report{
		Records: len(t.Rows),
		Samples: map[string][]string{},
	}

	for col, name := range t.Header {
		c := Column{Name: name}
		for _, row := range t.Rows {
			v := t.cell(row, col)
			switch {
			case v == "":
				c.Missing++
			case strings.TrimSpace(v) == "":
				c.Blank++
			}
		}
		c.TotalEmpty = c.Missing + c.Blank
		if rep.Records > 0 {
			c.Completeness = 100 - float64(c.TotalEmpty)/float64(rep.Records)*100
		}
		rep.Columns = append(rep.Columns, c)
	}

	index := make(map[string]int, len(t.Header))
	for i, name := range t.Header {
		index[name] = i
	}

	for _, name := range SampleColumns {
		col, ok := index[name]
		if !ok {
			continue
		}
		samples := []string{}
		for _, row := range t.Rows {
			if len(samples) == sampleCount {
				break
			}
			if v := t.cell(row, col); strings.TrimSpace(v) != "" {
				samples = append(samples, truncate(v, sampleRunes))
			}
		}
		rep.Samples[name] = samples
	}

	if col, ok := index[urlColumn]; ok {
		rep.HasURLColumn = true
		seen := make(map[string]struct{}, len(t.Rows))
		for _, row := range t.Rows {
			u := t.cell(row, col)
			if _, dup := seen[u]; dup {
				rep.DuplicateURLs++
				continue
			}
			seen[u] = struct{}{}
		}
	}
	return rep
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// Render writes the report as tables to w.
func Render(w io.Writer, rep Report) {
	title := cases.Title(language.English)

	fmt.Fprintf(w, "Loaded %d records\n\n", rep.Records)

	t := newTable(w, "Missing Data Breakdown")
	t.AppendHeader(table.Row{"Column", "Missing", "Empty String", "Total Empty", "% Complete"})
	for _, c := range rep.Columns {
		complete := "n/a"
		if rep.Records > 0 {
			complete = fmt.Sprintf("%.1f%%", c.Completeness)
		}
		t.AppendRow(table.Row{c.Name, c.Missing, c.Blank, c.TotalEmpty, complete})
	}
	t.Render()

	for _, name := range SampleColumns {
		samples, ok := rep.Samples[name]
		if !ok {
			continue
		}
		fmt.Fprintln(w)
		t := newTable(w, "Sample Data: "+title.String(name))
		if len(samples) == 0 {
			t.AppendRow(table.Row{"", "(No data found in this column)"})
		}
		for i, s := range samples {
			t.AppendRow(table.Row{i + 1, s})
		}
		t.Render()
	}

	if rep.HasURLColumn {
		fmt.Fprintln(w)
		if rep.DuplicateURLs == 0 {
			fmt.Fprintln(w, "No duplicate profiles found.")
		} else {
			fmt.Fprintf(w, "Found %d duplicate profiles based on URL.\n", rep.DuplicateURLs)
		}
	}
}

// newTable prints title on its own line; go-pretty titles wrap to the table width.
func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	fmt.Fprintln(w, title)
	return t
}
