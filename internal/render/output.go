package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"unicode/utf8"
)

//go:embed templates/resume.html
var templatesFS embed.FS

var page = template.Must(template.New("resume.html").
	Funcs(template.FuncMap{"join": strings.Join}).
	ParseFS(templatesFS, "templates/resume.html"))

// HTML writes tree as a standalone page.
func HTML(w io.Writer, tree Tree) error {
	if err := page.Execute(w, tree); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// Text writes tree as plain text.
func Text(w io.Writer, tree Tree) error {
	var b strings.Builder
	h := tree.Header
	if h.Name != "" {
		fmt.Fprintf(&b, "%s\n", h.Name)
	}
	for _, line := range append([]string{h.Location}, h.Details...) {
		if line != "" {
			fmt.Fprintf(&b, "%s\n", line)
		}
	}
	for _, l := range h.Links {
		fmt.Fprintf(&b, "%s: %s\n", l.Kind, l.URL)
	}

	for _, s := range tree.Sections {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s\n%s\n", strings.ToUpper(s.Heading), strings.Repeat("-", utf8.RuneCountInString(s.Heading)))
		if s.Text != "" {
			fmt.Fprintf(&b, "%s\n", s.Text)
		}
		for _, e := range s.Entries {
			fmt.Fprintf(&b, "%s\n", e.Title)
			for _, line := range []string{e.Subtitle, e.Meta, e.Body} {
				if line != "" {
					fmt.Fprintf(&b, "  %s\n", line)
				}
			}
		}
		for _, g := range s.Groups {
			fmt.Fprintf(&b, "%s: %s\n", g.Label, strings.Join(g.Items, ", "))
		}
		for _, it := range s.Items {
			fmt.Fprintf(&b, "- %s\n", it)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
