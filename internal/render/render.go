// Package render projects a resume document into a read-only display tree
// and writes that tree as HTML or plain text.
package render

import (
	"html"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/publicsuffix"

	"resume-builder/internal/model"
)

// Link is an external profile link.
type Link struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

type Header struct {
	Name     string   `json:"name"`
	Location string   `json:"location,omitempty"`
	Details  []string `json:"details,omitempty"`
	Links    []Link   `json:"links,omitempty"`
}

// Entry is one dated item such as a job or a school.
type Entry struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Meta     string `json:"meta,omitempty"`
	Body     string `json:"body,omitempty"`
}

// Group is a labelled list, e.g. one skill category.
type Group struct {
	Label string   `json:"label"`
	Items []string `json:"items"`
}

type Section struct {
	Key     string   `json:"key"`
	Heading string   `json:"heading"`
	Text    string   `json:"text,omitempty"`
	Entries []Entry  `json:"entries,omitempty"`
	Groups  []Group  `json:"groups,omitempty"`
	Items   []string `json:"items,omitempty"`
}

// Tree is the displayable document. Sections without content are left out.
type Tree struct {
	Header   Header    `json:"header"`
	Sections []Section `json:"sections"`
}

// Empty reports whether the tree has nothing to show.
func (t Tree) Empty() bool {
	return t.Header.Name == "" && t.Header.Location == "" &&
		len(t.Header.Details) == 0 && len(t.Header.Links) == 0 && len(t.Sections) == 0
}

var strict = bluemonday.StrictPolicy()

// maxCleanPasses bounds how many layers of entity encoding clean unwraps.
const maxCleanPasses = 8

// clean strips markup and surrounding space from user or generated text.
// Entities are decoded and the result sanitized again until nothing
// changes, so encoded tags cannot come back as live markup. Angle brackets
// that do not open a known HTML element, as in Map<K, V>, are kept as text.
func clean(s string) string {
	for i := 0; i < maxCleanPasses; i++ {
		next := html.UnescapeString(strict.Sanitize(escapeNonTags(s)))
		if next == s {
			return strings.TrimSpace(s)
		}
		s = next
	}
	// still layered after maxCleanPasses: keep it encoded
	return strings.TrimSpace(strict.Sanitize(s))
}

// escapeNonTags entity-encodes every '<' that does not start an HTML
// element name, so the sanitizer treats it as text.
func escapeNonTags(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '<' && !opensElement(s[i+1:]) {
			b.WriteString("&lt;")
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// opensElement reports whether rest, the text after a '<', begins with a
// known HTML element name, a closing tag for one, a comment or a doctype.
func opensElement(rest string) bool {
	if strings.HasPrefix(rest, "!") || strings.HasPrefix(rest, "?") {
		return true
	}
	rest = strings.TrimPrefix(rest, "/")
	n := 0
	for n < len(rest) && isNameByte(rest[n]) {
		n++
	}
	if n == 0 {
		return false
	}
	return atom.Lookup([]byte(strings.ToLower(rest[:n]))) != 0
}

func isNameByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-'
}

func cleanList(in []string) []string {
	var out []string
	for _, s := range in {
		if c := clean(s); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func join(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = clean(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// Render projects doc with the default headings. A nil or partially zero
// document renders whatever it has; Render never panics.
func Render(doc *model.Resume) Tree {
	return RenderWith(doc, nil)
}

// RenderWith is Render with heading overrides keyed like DefaultLabels.
func RenderWith(doc *model.Resume, labels map[string]string) Tree {
	l := mergeLabels(labels)
	tree := Tree{Sections: []Section{}}
	if doc == nil {
		return tree
	}

	pi := doc.PersonalInformation
	tree.Header = Header{
		Name:     clean(pi.FullName),
		Location: clean(pi.Location),
	}
	for _, d := range []string{pi.Email, pi.PhoneNumber} {
		if d = clean(d); d != "" {
			tree.Header.Details = append(tree.Header.Details, d)
		}
	}
	for _, cand := range []struct{ key, raw string }{
		{"linkedin", pi.LinkedIn},
		{"github", pi.GitHub},
		{"portfolio", pi.Portfolio},
		{"resume", pi.Resume},
	} {
		if link, ok := makeLink(l[cand.key], cand.raw); ok {
			tree.Header.Links = append(tree.Header.Links, link)
		}
	}

	add := func(s Section) {
		if s.Text != "" || len(s.Entries) > 0 || len(s.Groups) > 0 || len(s.Items) > 0 {
			tree.Sections = append(tree.Sections, s)
		}
	}

	add(Section{Key: "summary", Heading: l["summary"], Text: clean(doc.Summary)})

	ex := doc.Experience
	if e := (Entry{
		Title: join(" - ", ex.CompanyName, ex.JobTitle),
		Meta:  join(" · ", ex.Duration, ex.Location),
		Body:  clean(ex.Description),
	}); e != (Entry{}) {
		add(Section{Key: "experience", Heading: l["experience"], Entries: []Entry{e}})
	}

	ed := doc.Education
	if e := (Entry{
		Title:    clean(ed.SchoolName),
		Subtitle: join(", ", ed.Degree, ed.FieldOfStudy),
		Meta:     join(" · ", ed.GraduationYear, ed.Location),
	}); e != (Entry{}) {
		add(Section{Key: "education", Heading: l["education"], Entries: []Entry{e}})
	}

	skills := Section{Key: "skills", Heading: l["skills"]}
	for _, c := range model.Categories {
		if items := cleanList(doc.Languages[c]); len(items) > 0 {
			skills.Groups = append(skills.Groups, Group{Label: l[string(c)], Items: items})
		}
	}
	add(skills)

	add(Section{Key: "achievements", Heading: l["achievements"], Items: cleanList(doc.Achievements)})
	add(Section{Key: "certifications", Heading: l["certifications"], Items: cleanList(doc.Certifications)})
	add(Section{Key: "spoken_languages", Heading: l["spoken_languages"], Items: cleanList(doc.SpokenLanguages)})
	add(Section{Key: "interests", Heading: l["interests"], Items: cleanList(doc.Interests)})

	contact := Section{Key: "contact", Heading: l["contact"]}
	for _, f := range []struct{ key, val string }{
		{"email", doc.Contact.Email},
		{"phone", doc.Contact.Phone},
		{"address", doc.Contact.Address},
		{"website", doc.Contact.Website},
	} {
		if v := clean(f.val); v != "" {
			contact.Groups = append(contact.Groups, Group{Label: l[f.key], Items: []string{v}})
		}
	}
	add(contact)

	return tree
}

// makeLink accepts http(s) URLs, adding https:// when the scheme is
// missing. The label is the registrable domain when one can be derived.
func makeLink(kind, raw string) (Link, bool) {
	raw = clean(raw)
	if raw == "" {
		return Link{}, false
	}
	candidate := raw
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}
	u, err := url.Parse(candidate)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return Link{}, false
	}
	host := u.Hostname()
	label := strings.TrimPrefix(host, "www.")
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		label = strings.TrimPrefix(etld, "www.")
	}
	return Link{Kind: kind, Label: label, URL: u.String()}, true
}
