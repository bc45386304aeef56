package tree

import (
	"github.com/midbel/dtdjson/dtd"
	"github.com/midbel/dtdjson/tags"
)

// Unfold gives the events that a Builder needs to rebuild root. Lines of the
// events are numbered from one.
func Unfold(schema *dtd.Schema, root Value) ([]tags.Event, error) {
	u := unfolder{
		schema: schema,
	}
	if err := u.unfold(schema.Root, root); err != nil {
		return nil, err
	}
	for i := range u.events {
		u.events[i].Line = i + 1
	}
	return u.events, nil
}

type unfolder struct {
	schema *dtd.Schema
	events []tags.Event
}

func (u *unfolder) unfold(name string, value Value) error {
	switch v := value.(type) {
	case nil, Null:
		u.emit(tags.Event{
			Name:    name,
			Opening: true,
			Closing: true,
		})
	case Scalar:
		u.emit(tags.Event{
			Name:    name,
			Text:    string(v),
			HasText: true,
			Opening: true,
			Closing: true,
		})
	case *Object:
		return u.unfoldObject(name, v)
	default:
		return createError(0, name, "", ErrUnfold)
	}
	return nil
}

func (u *unfolder) unfoldObject(name string, obj *Object) error {
	var (
		ev = tags.Event{
			Name:    name,
			Attrs:   make(map[string]string),
			Opening: true,
		}
		children []string
	)
	for _, k := range obj.Keys() {
		v, _ := obj.Get(k)
		if k == ContentKey {
			ev.Text, ev.HasText = AsScalar(v)
			continue
		}
		rule, ok := u.schema.Lookup(name, k)
		if !ok {
			return createError(0, name, k, ErrUnfold)
		}
		if !rule.Attribute {
			children = append(children, k)
			continue
		}
		str, ok := AsScalar(v)
		if !ok {
			return createError(0, name, k, ErrUnfold)
		}
		ev.Attrs[k] = str
	}
	if len(children) == 0 {
		ev.Closing = true
		u.emit(ev)
		return nil
	}
	if ev.HasText {
		return createError(0, name, ContentKey, ErrUnfold)
	}
	u.emit(ev)
	for _, k := range children {
		var (
			v, _    = obj.Get(k)
			rule, _ = u.schema.Lookup(name, k)
		)
		if !rule.Many {
			if err := u.unfold(k, v); err != nil {
				return err
			}
			continue
		}
		list, ok := AsList(v)
		if !ok {
			return createError(0, name, k, ErrUnfold)
		}
		for i := range list {
			if err := u.unfold(k, list[i]); err != nil {
				return err
			}
		}
	}
	u.emit(tags.Event{
		Name:    name,
		Closing: true,
	})
	return nil
}

func (u *unfolder) emit(ev tags.Event) {
	u.events = append(u.events, ev)
}
