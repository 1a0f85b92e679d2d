// Package preset reads and writes parameter preset files.
//
// A preset is comma separated text with '#' comments. Every record has six
// fields: name, value, min, max, precision, unit. Only name, value and
// precision are read back; the other fields are informational.
package preset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/RMahshie/basscalc/internal/params"
	"github.com/rs/zerolog/log"
)

// RecordLen is the number of fields in a preset record
const RecordLen = 6

const (
	fieldName      = 0
	fieldValue     = 1
	fieldPrecision = 4
)

// ErrMalformedInput marks a record or field that could not be parsed
var ErrMalformedInput = errors.New("malformed input")

// Skip describes one record, or one field of a record, that was not applied
type Skip struct {
	Line   int    `json:"line"`
	Name   string `json:"name,omitempty"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
}

// Report summarises a load. A load with skips is still a successful load.
type Report struct {
	Applied []string `json:"applied"`
	Skipped []Skip   `json:"skipped,omitempty"`
}

func (r *Report) skip(s Skip) {
	log.Warn().Int("line", s.Line).Str("name", s.Name).Str("field", s.Field).Str("reason", s.Reason).Msg("Skipped preset record")
	r.Skipped = append(r.Skipped, s)
}

// Load applies the records read from r to g. Values and precisions are set
// as read; the caller runs the recompute pass afterwards. Bad records are
// reported and skipped. The returned error is reserved for read failures.
func Load(r io.Reader, g *params.Graph) (Report, error) {
	var report Report

	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				report.skip(Skip{Line: perr.Line, Reason: perr.Err.Error()})
				continue
			}
			return report, fmt.Errorf("failed to read preset: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if first {
			first = false
			if isHeader(record) {
				continue
			}
		}

		if len(record) != RecordLen {
			report.skip(Skip{
				Line:   line,
				Name:   strings.TrimSpace(record[fieldName]),
				Reason: fmt.Sprintf("expected %d fields, got %d", RecordLen, len(record)),
			})
			continue
		}

		if applyRecord(g, record, line, &report) {
			report.Applied = append(report.Applied, strings.TrimSpace(record[fieldName]))
		}
	}

	log.Info().Int("applied", len(report.Applied)).Int("skipped", len(report.Skipped)).Msg("Preset loaded")
	return report, nil
}

// applyRecord sets value and precision independently, so a bad precision
// does not discard a good value.
func applyRecord(g *params.Graph, record []string, line int, report *Report) bool {
	name := strings.TrimSpace(record[fieldName])
	if _, ok := g.Lookup(name); !ok {
		report.skip(Skip{Line: line, Name: name, Reason: (&params.UnknownError{Name: name}).Error()})
		return false
	}

	applied := false
	raw := strings.TrimSpace(record[fieldValue])
	if value, err := strconv.ParseFloat(raw, 64); err != nil {
		report.skip(Skip{Line: line, Name: name, Field: "value", Reason: fmt.Sprintf("%s: value %q", ErrMalformedInput, raw)})
	} else if err := g.SetValue(name, value); err == nil {
		applied = true
	}

	raw = strings.TrimSpace(record[fieldPrecision])
	if precision, err := strconv.ParseUint(raw, 10, 8); err != nil {
		report.skip(Skip{Line: line, Name: name, Field: "precision", Reason: fmt.Sprintf("%s: precision %q", ErrMalformedInput, raw)})
	} else if err := g.SetPrecision(name, int(precision)); err == nil {
		applied = true
	}

	return applied
}

func isHeader(record []string) bool {
	return strings.EqualFold(strings.TrimSpace(record[fieldName]), "name")
}

// LoadFile opens path and applies it with Load
func LoadFile(path string, g *params.Graph) (Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return Report{}, fmt.Errorf("failed to open preset: %w", err)
	}
	defer f.Close()

	return Load(f, g)
}

// Encode writes every parameter of g in preset format. Derived parameters
// are written too; loading them is harmless because the next recompute
// overwrites them.
func Encode(w io.Writer, g *params.Graph) error {
	if _, err := fmt.Fprintln(w, "# name, value, min, max, precision, unit"); err != nil {
		return fmt.Errorf("failed to write preset: %w", err)
	}

	cw := csv.NewWriter(w)
	for _, p := range g.All() {
		unit := p.Unit
		if unit == "" {
			unit = "-"
		}
		record := []string{
			p.Name,
			strconv.FormatFloat(p.Value, 'g', -1, 64),
			strconv.FormatFloat(p.Min, 'g', -1, 64),
			strconv.FormatFloat(p.Max, 'g', -1, 64),
			strconv.Itoa(p.Precision),
			unit,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write preset: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write preset: %w", err)
	}
	return nil
}

// Save writes g to path with Encode
func Save(path string, g *params.Graph) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create preset: %w", err)
	}
	if err := Encode(f, g); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
