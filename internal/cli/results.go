package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/papertrail/internal/model"
)

// abstractPreview is how much of each abstract the result listing shows.
const abstractPreview = 200

// ratingStyle colors a rating by how relevant it is.
func ratingStyle(r model.Rating) lipgloss.Style {
	if !r.Valid() {
		return ErrorStyle
	}
	switch r.Severity() {
	case 5, 4:
		return SuccessStyle
	case 3:
		return BoldStyle
	default:
		return SubtleStyle
	}
}

// PrintClassifications writes one block per paper: title, rating, reasoning
// and the start of the abstract.
func PrintClassifications(w io.Writer, papers []model.ClassifiedPaper) error {
	for _, p := range papers {
		rating := string(p.Rating)
		reasoning := p.Reasoning
		if p.IsError() {
			rating = "error: " + p.Error
			reasoning = p.Response
		}

		block := strings.Join([]string{
			TitleStyle.Render(PaperIcon + " " + p.Title),
			BoldStyle.Render("Rating: ") + ratingStyle(p.Rating).Render(rating),
			BoldStyle.Render("Reasoning: ") + reasoning,
			SubtleStyle.Render("Abstract: " + truncate(p.Abstract, abstractPreview) + "..."),
			SubtleStyle.Render("---"),
		}, "\n")

		if _, err := fmt.Fprintln(w, block); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
	}
	return nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
