package extractor

import (
	"regexp"
	"strings"
	"unicode"
)

// DefaultSection names the text before the first detected heading, and
// the whole document when no heading is ever detected.
const DefaultSection = "main"

const maxHeadingLen = 100

var (
	numberedHeadingRe = regexp.MustCompile(`^[\d.]+ [A-Z]`)
	labeledHeadingRe  = regexp.MustCompile(`^[A-Z][a-z]+ \d+`)
)

// Section is one named slice of the document, in document order.
type Section struct {
	Title string
	Body  string
}

// Document is the segmented form of extracted text.
type Document struct {
	sections []Section
	index    map[string]int
}

// Segment splits raw text into named sections using line heuristics.
// A line shorter than 100 characters counts as a heading when it is
// entirely upper-case, starts with "number(s) Capital", or starts with
// "Capitalized-word digits". Body lines accumulate under the current
// heading; when no heading is ever found the whole text lands in a
// single "main" section.
func Segment(raw string) *Document {
	doc := &Document{index: make(map[string]int)}

	currentTitle := DefaultSection
	var body []string

	for _, line := range strings.Split(raw, "\n") {
		if isHeading(line) {
			if len(body) > 0 {
				doc.add(currentTitle, strings.Join(body, "\n"))
				body = body[:0]
			}
			currentTitle = strings.TrimSpace(line)
			continue
		}
		body = append(body, line)
	}
	if len(body) > 0 {
		doc.add(currentTitle, strings.Join(body, "\n"))
	}

	if len(doc.sections) == 0 {
		doc.add(DefaultSection, raw)
	}

	return doc
}

func isHeading(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) >= maxHeadingLen {
		return false
	}
	return isUpper(trimmed) ||
		numberedHeadingRe.MatchString(trimmed) ||
		labeledHeadingRe.MatchString(trimmed)
}

// isUpper reports whether every cased rune in the line is upper-case,
// requiring at least one so digits and punctuation alone don't qualify.
// Accented letters count like any other cased rune.
func isUpper(s string) bool {
	hasUpper := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasUpper = true
		}
	}
	return hasUpper
}

// add appends a section, overwriting the body when a later heading
// collides with an earlier title.
func (d *Document) add(title, body string) {
	if i, ok := d.index[title]; ok {
		d.sections[i].Body = body
		return
	}
	d.index[title] = len(d.sections)
	d.sections = append(d.sections, Section{Title: title, Body: body})
}

// Sections returns the sections in document order.
func (d *Document) Sections() []Section {
	return d.sections
}

// Titles returns the section titles in document order.
func (d *Document) Titles() []string {
	titles := make([]string, len(d.sections))
	for i, s := range d.sections {
		titles[i] = s.Title
	}
	return titles
}

// Body returns the body of the named section.
func (d *Document) Body(title string) (string, bool) {
	i, ok := d.index[title]
	if !ok {
		return "", false
	}
	return d.sections[i].Body, true
}
