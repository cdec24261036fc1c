package gallery

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Entry is one thumbnail tile. Src is an escaped URL reference.
type Entry struct {
	Src   template.URL
	Label string
}

// Page is the data rendered into the gallery template.
type Page struct {
	Title   string
	Entries []Entry
}

var pageTemplate = template.Must(template.New("gallery").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <style>
.img-container {
  width: 20%;
  display: inline-block;
}
img {
  max-width: 100%;
}
p {
  font-style: italic;
  padding: 0;
  margin: 0;
}
  </style>
</head>
<body>
{{- range .Entries}}
<div class="img-container">
  <img src="{{.Src}}" />
  <p>{{.Label}}</p>
</div>
{{- end}}
</body>
</html>
`))

// Render executes the gallery template.
func Render(page Page) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("render gallery: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildEntries pairs each offset's thumbnail with its timestamp label. When dir
// is empty the sources are relative references; otherwise they are file://
// URLs under dir.
func BuildEntries(offsets []float64, filenameTemplate, dir string, names func(string, float64) string) []Entry {
	entries := make([]Entry, 0, len(offsets))
	for _, offset := range offsets {
		entries = append(entries, Entry{
			Src:   imageSource(dir, names(filenameTemplate, offset)),
			Label: FormatTimestamp(offset),
		})
	}
	return entries
}

// imageSource escapes name so characters such as '#' and '?' stay part of
// the path.
func imageSource(dir, name string) template.URL {
	if dir == "" {
		return template.URL((&url.URL{Path: name}).String())
	}
	return template.URL((&url.URL{Scheme: "file", Path: filepath.Join(dir, name)}).String())
}

// TitleFromInput derives a readable page title from the source video name,
// so "my_holiday-2023.mp4" becomes "My Holiday 2023".
func TitleFromInput(inputPath string) string {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(base)
	base = strings.Join(strings.Fields(base), " ")
	if base == "" {
		return "Contact Sheet"
	}
	return cases.Title(language.English).String(base)
}
