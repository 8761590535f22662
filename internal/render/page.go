// Package render turns classified papers into standalone HTML pages.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"unicode"

	"github.com/Veraticus/papertrail/internal/model"
)

// maxFileNameLength caps the sanitized title, not counting the extension.
const maxFileNameLength = 50

const pageStyle = `
        body { font-family: Arial, sans-serif; line-height: 1.6; padding: 20px; max-width: 800px; margin: 0 auto; }
        h1 { color: #333; }
        .authors { font-style: italic; color: #666; margin-bottom: 20px; }
        .summary, .reasoning { background-color: #f9f9f9; padding: 15px; border-radius: 5px; margin-bottom: 20px; }
        .paper-link { display: inline-block; background-color: #4CAF50; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; margin-top: 20px; }
        .paper-link:hover { background-color: #45a049; }
        .ai-notice { font-size: 0.8em; text-align: right; margin-top: 20px; color: #999; }
`

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>{{.Style}}</style>
</head>
<body>
    <h1>{{.Title}}</h1>
    <p><strong>Date:</strong> {{.Date}}</p>
    <p class="authors"><strong>Authors:</strong> {{.Authors}}</p>
    <div class="summary">
        <h2>Abstract</h2>
        <p>{{.Abstract}}</p>
    </div>
    <div class="reasoning">
        <h2>AI-Generated Summary</h2>
        <p>{{.Reasoning}}</p>
    </div>
    <a href="{{.PDFURL}}" class="paper-link" target="_blank">Read the full paper</a>
    <p class="ai-notice">The summary is AI-generated and may not perfectly reflect the paper's content.</p>
</body>
</html>
`

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

type pageData struct {
	Style     template.CSS
	Title     string
	Date      string
	Authors   string
	Abstract  string
	Reasoning string
	PDFURL    string
}

// Page renders the HTML document for one paper. Output depends only on p.
func Page(p model.ClassifiedPaper) ([]byte, error) {
	data := pageData{
		Style:     template.CSS(pageStyle),
		Title:     p.Title,
		Date:      p.PublishedDate(),
		Authors:   p.AuthorList(),
		Abstract:  p.Abstract,
		Reasoning: p.Reasoning,
		PDFURL:    p.PDFURL,
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render page for %q: %w", p.Title, err)
	}
	return buf.Bytes(), nil
}

// FileName derives the page file name from a paper title: letters, digits
// and spaces are kept, trailing space trimmed, spaces become underscores,
// the result is lower-cased and capped at 50 characters before ".html".
func FileName(title string) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	name := strings.TrimRightFunc(b.String(), unicode.IsSpace)
	name = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, name)
	name = strings.ToLower(name)

	if runes := []rune(name); len(runes) > maxFileNameLength {
		name = string(runes[:maxFileNameLength])
	}
	if name == "" {
		name = "untitled"
	}

	return name + ".html"
}
