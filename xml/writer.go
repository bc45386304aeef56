package xml

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/midbel/dtdjson/dtd"
	"github.com/midbel/dtdjson/tags"
	"github.com/midbel/dtdjson/tree"
)

const (
	SupportedVersion  = "1.0"
	SupportedEncoding = "UTF-8"
)

type WriterOptions uint64

const (
	OptionNoProlog WriterOptions = 1 << iota
	OptionNoDoctype
	OptionEscape
)

func (w WriterOptions) NoProlog() bool {
	return w&OptionNoProlog > 0
}

func (w WriterOptions) NoDoctype() bool {
	return w&OptionNoDoctype > 0
}

func (w WriterOptions) Escape() bool {
	return w&OptionEscape > 0
}

// Writer writes a tree back as markup with one structural unit per line. The
// output can be given again to the converter.
type Writer struct {
	writer *bufio.Writer

	Indent string
	WriterOptions
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{
		writer: bufio.NewWriter(w),
		Indent: "  ",
	}
}

func (w *Writer) Write(schema *dtd.Schema, root tree.Value) error {
	events, err := tree.Unfold(schema, root)
	if err != nil {
		return err
	}
	if !w.NoProlog() {
		fmt.Fprintf(w.writer, `<?xml version="%s" encoding="%s"?>`, SupportedVersion, SupportedEncoding)
		w.writer.WriteRune('\n')
	}
	if !w.NoDoctype() {
		w.writeDoctype(schema)
	}
	var depth int
	for _, ev := range events {
		if ev.Closing && !ev.Opening {
			depth--
		}
		w.writer.WriteString(strings.Repeat(w.Indent, max(depth, 0)))
		w.writeEvent(ev)
		w.writer.WriteRune('\n')
		if ev.Opening && !ev.Closing {
			depth++
		}
	}
	return w.writer.Flush()
}

func (w *Writer) WriteDoctype(schema *dtd.Schema) error {
	w.writeDoctype(schema)
	return w.writer.Flush()
}

func (w *Writer) writeDoctype(schema *dtd.Schema) {
	fmt.Fprintf(w.writer, "<!DOCTYPE %s [", schema.Root)
	w.writer.WriteRune('\n')
	for _, name := range declaredElements(schema) {
		children := schema.Children(name)
		if len(children) == 0 {
			fmt.Fprintf(w.writer, "<!ELEMENT %s (#PCDATA)>", name)
			w.writer.WriteRune('\n')
		} else {
			var list []string
			for _, c := range children {
				rule, _ := schema.Lookup(name, c)
				list = append(list, c+rule.Arity())
			}
			fmt.Fprintf(w.writer, "<!ELEMENT %s (%s)>", name, strings.Join(list, ", "))
			w.writer.WriteRune('\n')
		}
		for _, a := range schema.Attributes(name) {
			rule, _ := schema.Lookup(name, a)
			var value string
			switch {
			case rule.Fixed:
				value = fmt.Sprintf(`#FIXED "%s"`, rule.Default)
			case rule.HasDefault:
				value = fmt.Sprintf(`"%s"`, rule.Default)
			case rule.Required:
				value = "#REQUIRED"
			default:
				value = "#IMPLIED"
			}
			kind := rule.Type
			if kind == "" {
				kind = "CDATA"
			}
			fmt.Fprintf(w.writer, "<!ATTLIST %s %s %s %s>", name, a, kind, value)
			w.writer.WriteRune('\n')
		}
	}
	for _, n := range schema.Entities.Names() {
		v, _ := schema.Entities.Resolve(n)
		fmt.Fprintf(w.writer, `<!ENTITY %s "%s">`, n, v)
		w.writer.WriteRune('\n')
	}
	w.writer.WriteString("]>")
	w.writer.WriteRune('\n')
}

func (w *Writer) writeEvent(ev tags.Event) {
	if !w.Escape() {
		w.writer.WriteString(ev.String())
		return
	}
	ev.Text = escapeText(ev.Text)
	attrs := make(map[string]string)
	for k, v := range ev.Attrs {
		attrs[k] = escapeText(v)
	}
	ev.Attrs = attrs
	w.writer.WriteString(ev.String())
}

// declaredElements lists the elements reachable from the root, in the order
// they are first met.
func declaredElements(schema *dtd.Schema) []string {
	var (
		list  []string
		queue = []string{schema.Root}
	)
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if slices.Contains(list, name) {
			continue
		}
		list = append(list, name)
		queue = append(queue, schema.Children(name)...)
	}
	return list
}

var escaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeText(str string) string {
	return escaper.Replace(str)
}
