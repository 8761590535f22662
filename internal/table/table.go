// Package table reads and writes the dated classification table as CSV.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Veraticus/papertrail/internal/common"
	"github.com/Veraticus/papertrail/internal/model"
)

// Column names, in the order they are written.
const (
	ColTitle     = "title"
	ColAuthors   = "authors"
	ColAbstract  = "abstract"
	ColPDFURL    = "pdf_url"
	ColPublished = "published"
	ColModel     = "Model"
	ColRating    = "Rating"
	ColReasoning = "Reasoning"
	ColError     = "Error"
	ColResponse  = "Response"
)

// Header is the header row of every table this package writes.
var Header = []string{
	ColTitle, ColAuthors, ColAbstract, ColPDFURL, ColPublished,
	ColModel, ColRating, ColReasoning, ColError, ColResponse,
}

// required columns must be present for a table to be readable.
var required = []string{ColTitle, ColRating}

const authorSeparator = ", "

// Write serializes papers to w, header first, one row per paper.
func Write(w io.Writer, papers []model.ClassifiedPaper) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, p := range papers {
		row := []string{
			p.Title,
			strings.Join(p.Authors, authorSeparator),
			p.Abstract,
			p.PDFURL,
			p.PublishedDate(),
			p.Model,
			string(p.Rating),
			p.Reasoning,
			p.Error,
			p.Response,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// Encode returns the CSV text for papers.
func Encode(papers []model.ClassifiedPaper) ([]byte, error) {
	var b strings.Builder
	if err := Write(&b, papers); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

// Read parses a table. Columns are matched by header name, so extra or
// reordered columns are tolerated; title and Rating must be present.
func Read(r io.Reader) ([]model.ClassifiedPaper, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty table", common.ErrMalformedTable)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", common.ErrMalformedTable, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", common.ErrMalformedTable, name)
		}
	}

	var papers []model.ClassifiedPaper
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", common.ErrMalformedTable, line, err)
		}

		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}

		published, raw := parseDate(field(ColPublished))

		papers = append(papers, model.ClassifiedPaper{
			Paper: model.Paper{
				Title:        field(ColTitle),
				Authors:      splitAuthors(field(ColAuthors)),
				Abstract:     field(ColAbstract),
				PDFURL:       field(ColPDFURL),
				Published:    published,
				PublishedRaw: raw,
			},
			Classification: model.Classification{
				Model:     field(ColModel),
				Rating:    model.Rating(strings.TrimSpace(field(ColRating))),
				Reasoning: field(ColReasoning),
				Error:     field(ColError),
				Response:  field(ColResponse),
			},
		})
	}

	return papers, nil
}

// Decode parses CSV text.
func Decode(content string) ([]model.ClassifiedPaper, error) {
	return Read(strings.NewReader(content))
}

// parseDate returns the calendar date in s, or s itself when it is not one.
func parseDate(s string) (time.Time, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ""
	}
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return time.Time{}, s
	}
	return t, ""
}

func splitAuthors(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, authorSeparator)
	authors := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			authors = append(authors, p)
		}
	}
	return authors
}
