package tree

import (
	"github.com/midbel/dtdjson/dtd"
	"github.com/midbel/dtdjson/tags"
)

// ContentKey holds the inline text of an element that is not a text-only
// leaf.
const ContentKey = "xml:content"

type Frame struct {
	Element string
	Line    int
	Value   *Object
}

type stack []Frame

func (s *stack) push(f Frame) {
	*s = append(*s, f)
}

func (s *stack) pop() (Frame, bool) {
	n := len(*s)
	if n == 0 {
		return Frame{}, false
	}
	f := (*s)[n-1]
	(*s)[n-1] = Frame{}
	*s = (*s)[:n-1]
	return f, true
}

func (s stack) top() (Frame, bool) {
	if len(s) == 0 {
		return Frame{}, false
	}
	return s[len(s)-1], true
}

// Builder assembles the output tree from the events of one document. A
// builder can not be reused: after an error every call reports the same
// error.
type Builder struct {
	Tracer
	ApplyDefaults bool

	schema *dtd.Schema
	stack  stack
	final  Value
	done   bool
	err    error
}

func NewBuilder(schema *dtd.Schema) *Builder {
	return &Builder{
		Tracer: NoopTracer(),
		schema: schema,
	}
}

func (b *Builder) Depth() int {
	return len(b.stack)
}

func (b *Builder) Next(ev tags.Event) error {
	if b.err != nil {
		return b.err
	}
	if err := b.next(ev); err != nil {
		b.err = err
		b.Tracer.Error(err)
		return err
	}
	return nil
}

func (b *Builder) Result() (Value, error) {
	if b.err != nil {
		return nil, b.err
	}
	if f, ok := b.stack.top(); ok {
		return nil, createError(f.Line, f.Element, "", ErrUnexpectedEnd)
	}
	if !b.done {
		return nil, createError(0, b.schema.Root, "", ErrMissingRoot)
	}
	return b.final, nil
}

func (b *Builder) next(ev tags.Event) error {
	if ev.Opening {
		if err := b.open(ev); err != nil {
			return err
		}
	}
	if ev.Closing {
		return b.close(ev)
	}
	return nil
}

func (b *Builder) open(ev tags.Event) error {
	if ev.Name == b.schema.Root {
		if b.done || len(b.stack) > 0 {
			return createError(ev.Line, ev.Name, "", ErrDuplicateRoot)
		}
	} else {
		parent, ok := b.stack.top()
		if !ok {
			return createError(ev.Line, ev.Name, b.schema.Root, ErrMissingRoot)
		}
		rule, ok := b.schema.Lookup(parent.Element, ev.Name)
		if !ok || rule.Attribute {
			return createError(ev.Line, parent.Element, ev.Name, ErrInvalidChild)
		}
		if !rule.Many && parent.Value.Has(ev.Name) {
			return createError(ev.Line, parent.Element, ev.Name, ErrCardinality)
		}
	}
	obj, err := b.attributes(ev)
	if err != nil {
		return err
	}
	if ev.HasText {
		obj.Set(ContentKey, Scalar(ev.Text))
	}
	f := Frame{
		Element: ev.Name,
		Line:    ev.Line,
		Value:   obj,
	}
	b.stack.push(f)
	b.Tracer.Open(f, len(b.stack))
	return nil
}

func (b *Builder) attributes(ev tags.Event) (*Object, error) {
	for name := range ev.Attrs {
		rule, ok := b.schema.Lookup(ev.Name, name)
		if !ok || !rule.Attribute {
			return nil, createError(ev.Line, ev.Name, name, ErrUnexpectedAttribute)
		}
	}
	obj := NewObject()
	for _, name := range b.schema.Attributes(ev.Name) {
		if v, ok := ev.Attrs[name]; ok {
			obj.Set(name, Scalar(v))
			continue
		}
		rule, _ := b.schema.Lookup(ev.Name, name)
		if b.ApplyDefaults && rule.HasDefault {
			obj.Set(name, Scalar(rule.Default))
		}
	}
	return obj, nil
}

func (b *Builder) close(ev tags.Event) error {
	f, ok := b.stack.pop()
	if !ok || f.Element != ev.Name {
		return createError(ev.Line, ev.Name, "", ErrUnmatchedTag)
	}
	b.Tracer.Close(f, len(b.stack)+1)

	var value Value = f.Value
	if rules, ok := b.schema.Rules(f.Element); ok {
		for _, name := range b.schema.Names(f.Element) {
			if rules[name].Required && !f.Value.Has(name) {
				return createError(ev.Line, f.Element, name, ErrMissingRequired)
			}
		}
	} else {
		value = collapse(f.Value)
	}

	parent, ok := b.stack.top()
	if !ok {
		b.final = value
		b.done = true
		return nil
	}
	rule, _ := b.schema.Lookup(parent.Element, f.Element)
	if rule.Many {
		parent.Value.Append(f.Element, value)
	} else {
		parent.Value.Set(f.Element, value)
	}
	return nil
}

func collapse(obj *Object) Value {
	v, ok := obj.Get(ContentKey)
	if !ok {
		return Null{}
	}
	return v
}
