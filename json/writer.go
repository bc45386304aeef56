package json

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/midbel/dtdjson/casing"
	"github.com/midbel/dtdjson/tree"
)

const hex = "0123456789abcdef"

type Writer struct {
	ws *bufio.Writer

	Indent  string
	Compact bool
	Case    casing.CaseType

	level int
}

func NewWriter(w io.Writer) *Writer {
	ws := Writer{
		ws:     bufio.NewWriter(w),
		Indent: "  ",
	}
	return &ws
}

func (w *Writer) Write(value tree.Value) (err error) {
	defer w.flush(&err)
	return w.writeValue(value)
}

// WriteEntries writes the list found under key in root as a JSON array with
// one compact entry per line.
func (w *Writer) WriteEntries(root tree.Value, key string) (err error) {
	defer w.flush(&err)
	obj, ok := tree.AsObject(root)
	if !ok {
		return fmt.Errorf("object expected at root, got %s", kindOf(root))
	}
	var list tree.List
	if v, ok := obj.Get(key); ok {
		if list, ok = tree.AsList(v); !ok {
			return fmt.Errorf("%s: list expected, got %s", key, kindOf(v))
		}
	}
	compact := w.Compact
	defer func() {
		w.Compact = compact
	}()
	w.Compact = true

	w.ws.WriteString("[\n")
	for i := range list {
		if i > 0 {
			w.ws.WriteString(",\n")
		}
		w.ws.WriteString(w.Indent)
		if err := w.writeValue(list[i]); err != nil {
			return err
		}
	}
	if len(list) > 0 {
		w.ws.WriteRune('\n')
	}
	w.ws.WriteString("]\n")
	return nil
}

func (w *Writer) writeValue(value tree.Value) error {
	switch v := value.(type) {
	case *tree.Object:
		return w.writeObject(v)
	case tree.List:
		return w.writeArray(v)
	case tree.Scalar:
		w.writeString(string(v))
	case tree.Null, nil:
		w.ws.WriteString("null")
	default:
		return fmt.Errorf("unsupported json type %T", value)
	}
	return nil
}

func (w *Writer) writeObject(value *tree.Object) error {
	if value.Len() == 0 {
		w.ws.WriteString("{}")
		return nil
	}
	w.enter()

	w.ws.WriteRune('{')
	w.writeNL()
	for i, k := range value.Keys() {
		if i > 0 {
			w.ws.WriteRune(',')
			w.writeNL()
		}
		w.writePrefix()
		w.writeKey(k)
		v, _ := value.Get(k)
		if err := w.writeValue(v); err != nil {
			return err
		}
	}
	w.leave()
	w.writeNL()
	w.writePrefix()
	w.ws.WriteRune('}')
	return nil
}

func (w *Writer) writeArray(value tree.List) error {
	if len(value) == 0 {
		w.ws.WriteString("[]")
		return nil
	}
	w.enter()

	w.ws.WriteRune('[')
	w.writeNL()
	for i := range value {
		if i > 0 {
			w.ws.WriteRune(',')
			w.writeNL()
		}
		w.writePrefix()
		if err := w.writeValue(value[i]); err != nil {
			return err
		}
	}
	w.leave()
	w.writeNL()
	w.writePrefix()
	w.ws.WriteRune(']')
	return nil
}

func (w *Writer) writeKey(key string) {
	w.writeString(casing.To(w.Case, key))
	w.ws.WriteRune(':')
	if !w.Compact {
		w.ws.WriteRune(' ')
	}
}

func (w *Writer) writeString(value string) {
	w.ws.WriteRune('"')
	for i := 0; i < len(value); {
		r, z := utf8.DecodeRuneInString(value[i:])
		switch {
		case r == '"' || r == '\\':
			w.ws.WriteRune('\\')
			w.ws.WriteRune(r)
		case r == '\n':
			w.ws.WriteString(`\n`)
		case r == '\r':
			w.ws.WriteString(`\r`)
		case r == '\t':
			w.ws.WriteString(`\t`)
		case r < 0x20:
			w.ws.WriteString(`\u00`)
			w.ws.WriteByte(hex[r>>4])
			w.ws.WriteByte(hex[r&0xF])
		case r == utf8.RuneError && z == 1:
			w.ws.WriteString(`�`)
		default:
			w.ws.WriteString(value[i : i+z])
		}
		i += z
	}
	w.ws.WriteRune('"')
}

func (w *Writer) writePrefix() {
	if w.Compact || w.level == 0 {
		return
	}
	space := strings.Repeat(w.Indent, w.level)
	w.ws.WriteString(space)
}

func (w *Writer) writeNL() {
	if w.Compact {
		return
	}
	w.ws.WriteRune('\n')
}

func (w *Writer) enter() {
	w.level++
}

func (w *Writer) leave() {
	w.level--
}

// flush reports the error of the underlying writer unless an earlier error
// is already set.
func (w *Writer) flush(err *error) {
	w.level = 0
	if e := w.ws.Flush(); *err == nil {
		*err = e
	}
}

func kindOf(v tree.Value) string {
	if v == nil {
		return tree.KindNull.String()
	}
	return v.Kind().String()
}
