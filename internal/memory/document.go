package memory

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the ISO date format used for entry suffixes.
const DateLayout = "2006-01-02"

const headerPrefix = "## "

var (
	entryPattern = regexp.MustCompile(`^- (.+) _\((\d{4}-\d{2}-\d{2})\)_$`)
	lineBreaks   = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")
)

// Entry is one dated fact under a section.
type Entry struct {
	Text string
	Date time.Time
}

// String renders the entry as a list line: "- <text> _(<date>)_".
// Line breaks inside the text are folded to spaces so an entry always
// occupies exactly one line.
func (e Entry) String() string {
	return fmt.Sprintf("- %s _(%s)_", singleLine(e.Text), e.Date.Format(DateLayout))
}

// ParseEntry parses a rendered entry line. Lines that are not well-formed
// entries report false.
func ParseEntry(line string) (Entry, bool) {
	m := entryPattern.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, false
	}
	date, err := time.Parse(DateLayout, m[2])
	if err != nil {
		return Entry{}, false
	}
	return Entry{Text: m[1], Date: date}, true
}

// Section is a "## <header>" block and the raw lines that follow it up to
// the next header.
// Lines keep a trailing "\r" when the file uses CRLF endings.
type Section struct {
	Header string
	Lines  []string

	eol string // "\r" when the header line ended in CRLF
}

// Entries returns the well-formed entry lines of the section body in order.
func (s *Section) Entries() []Entry {
	var out []Entry
	for _, line := range s.Lines {
		if e, ok := ParseEntry(strings.TrimSuffix(line, "\r")); ok {
			out = append(out, e)
		}
	}
	return out
}

// Document is a parsed memory file. Lines before the first header are kept
// verbatim as the preamble.
type Document struct {
	Preamble []string
	Sections []Section

	eol string // line ending suffix for inserted lines: "" or "\r"
}

// Parse splits text into a preamble and sections. It never fails: any text
// yields a document, and well-formed text serializes back byte for byte.
func Parse(text string) *Document {
	d := &Document{}
	if text == "" {
		return d
	}

	if first, _, _ := strings.Cut(text, "\n"); strings.HasSuffix(first, "\r") {
		d.eol = "\r"
	}

	cur := -1
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		if header, eol, ok := headerOf(line); ok {
			d.Sections = append(d.Sections, Section{Header: header, eol: eol})
			cur = len(d.Sections) - 1
			continue
		}
		if cur < 0 {
			d.Preamble = append(d.Preamble, line)
			continue
		}
		d.Sections[cur].Lines = append(d.Sections[cur].Lines, line)
	}
	return d
}

// String serializes the document. Every line, including the last, ends
// with a newline.
func (d *Document) String() string {
	var b strings.Builder
	for _, line := range d.Preamble {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	for _, s := range d.Sections {
		b.WriteString(headerPrefix)
		b.WriteString(s.Header)
		b.WriteString(s.eol)
		b.WriteByte('\n')
		for _, line := range s.Lines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Section returns the first section whose header equals name exactly.
func (d *Document) Section(name string) (*Section, bool) {
	i := d.index(name)
	if i < 0 {
		return nil, false
	}
	return &d.Sections[i], true
}

// Categories returns the section headers in document order.
func (d *Document) Categories() []string {
	out := make([]string, 0, len(d.Sections))
	for _, s := range d.Sections {
		out = append(out, s.Header)
	}
	return out
}

// Insert appends e under the first section named category, or adds a new
// section at the end of the document when none exists. Only the affected
// section's trailing blank lines are normalized; nothing else is touched.
// Inserted lines follow the document's line ending.
func (d *Document) Insert(category string, e Entry) {
	category = singleLine(category)
	line := e.String() + d.eol
	blank := d.eol

	if i := d.index(category); i >= 0 {
		s := &d.Sections[i]
		body := trimTrailingBlank(s.Lines)
		if len(body) == 0 {
			body = append(body, blank)
		}
		body = append(body, line)
		if i < len(d.Sections)-1 {
			body = append(body, blank)
		}
		s.Lines = body
		return
	}

	switch {
	case len(d.Sections) > 0:
		last := &d.Sections[len(d.Sections)-1]
		last.Lines = append(trimTrailingBlank(last.Lines), blank)
	case len(trimTrailingBlank(d.Preamble)) > 0:
		d.Preamble = append(trimTrailingBlank(d.Preamble), blank)
	default:
		// A blank-only preamble is nothing but trailing blank lines.
		d.Preamble = nil
	}
	d.Sections = append(d.Sections, Section{Header: category, Lines: []string{blank, line}, eol: d.eol})
}

func (d *Document) index(name string) int {
	for i := range d.Sections {
		if d.Sections[i].Header == name {
			return i
		}
	}
	return -1
}

// headerOf reports the header text of a "## " line and the "\r" it ended
// with, if any. An empty header text is allowed.
func headerOf(line string) (header, eol string, ok bool) {
	if !strings.HasPrefix(line, headerPrefix) {
		return "", "", false
	}
	header = line[len(headerPrefix):]
	if strings.HasSuffix(header, "\r") {
		return header[:len(header)-1], "\r", true
	}
	return header, "", true
}

func trimTrailingBlank(lines []string) []string {
	n := len(lines)
	for n > 0 && strings.TrimSpace(lines[n-1]) == "" {
		n--
	}
	return lines[:n]
}

func singleLine(s string) string {
	return lineBreaks.Replace(s)
}
