package tags

import (
	"maps"
	"regexp"
	"slices"
	"strings"
)

const (
	namePattern = `[A-Za-z0-9:_.-]+`
	attrPattern = `(?:[A-Za-z0-9:_.-]+="[^"]*"\s*)*`
)

var (
	reSingle  = regexp.MustCompile(`^\s*<(/)?\s*(` + namePattern + `)\s*(` + attrPattern + `)\s*(/)?>\s*$`)
	reContent = regexp.MustCompile(`^\s*<\s*(` + namePattern + `)\s*(` + attrPattern + `)\s*>\s*(.*?)\s*</\s*(` + namePattern + `)\s*>\s*$`)
	reAttr    = regexp.MustCompile(`(` + namePattern + `)="([^"]*)"`)
)

// Event is one structural unit of the document body. An event is always
// opening, closing or both.
type Event struct {
	Line    int
	Name    string
	Attrs   map[string]string
	Text    string
	HasText bool
	Opening bool
	Closing bool
}

func (e Event) SelfClosing() bool {
	return e.Opening && e.Closing && !e.HasText
}

func (e Event) String() string {
	var str strings.Builder
	str.WriteString("<")
	if e.Closing && !e.Opening {
		str.WriteString("/")
	}
	str.WriteString(e.Name)
	for _, k := range slices.Sorted(maps.Keys(e.Attrs)) {
		str.WriteString(" ")
		str.WriteString(k)
		str.WriteString(`="`)
		str.WriteString(e.Attrs[k])
		str.WriteString(`"`)
	}
	switch {
	case e.HasText:
		str.WriteString(">")
		str.WriteString(e.Text)
		str.WriteString("</")
		str.WriteString(e.Name)
		str.WriteString(">")
	case e.SelfClosing():
		str.WriteString("/>")
	default:
		str.WriteString(">")
	}
	return str.String()
}

// Lex extracts the event described by line. The second value is false when
// line is neither a single tag nor an element with its content on one line.
func Lex(line int, str string) (Event, bool) {
	if parts := reSingle.FindStringSubmatch(str); parts != nil {
		ev := Event{
			Line:    line,
			Name:    parts[2],
			Attrs:   attributes(parts[3]),
			Opening: parts[1] == "",
			Closing: parts[1] == "/" || parts[4] == "/",
		}
		return ev, true
	}
	if parts := reContent.FindStringSubmatch(str); parts != nil && parts[1] == parts[4] {
		ev := Event{
			Line:    line,
			Name:    parts[1],
			Attrs:   attributes(parts[2]),
			Text:    parts[3],
			HasText: parts[3] != "",
			Opening: true,
			Closing: true,
		}
		return ev, true
	}
	return Event{}, false
}

func attributes(str string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range reAttr.FindAllStringSubmatch(str, -1) {
		attrs[m[1]] = m[2]
	}
	return attrs
}
