// Package model defines the core domain models used throughout the application.
package model

import (
	"strings"
	"time"
)

// DateLayout is the calendar date format used for publication dates and run dates.
const DateLayout = "2006-01-02"

// Paper is the metadata for one paper returned by the listing service.
type Paper struct {
	Published time.Time
	// PublishedRaw keeps a published value that was not a calendar date.
	PublishedRaw string
	Title        string
	Abstract     string
	PDFURL       string
	Authors      []string
}

// AuthorList returns the authors joined in their original order.
func (p Paper) AuthorList() string {
	return strings.Join(p.Authors, ", ")
}

// PublishedDate returns the publication date as YYYY-MM-DD. A value read
// from a table that did not parse as a date is returned as stored.
func (p Paper) PublishedDate() string {
	if p.Published.IsZero() {
		return p.PublishedRaw
	}
	return p.Published.Format(DateLayout)
}
