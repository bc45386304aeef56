package tree

import (
	"slices"
)

type Kind int8

const (
	KindNull Kind = iota
	KindScalar
	KindList
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is one node of the output tree: Null, Scalar, List or *Object.
type Value interface {
	Kind() Kind
}

type Null struct{}

func (_ Null) Kind() Kind {
	return KindNull
}

type Scalar string

func (_ Scalar) Kind() Kind {
	return KindScalar
}

type List []Value

func (_ List) Kind() Kind {
	return KindList
}

// Object maps names to values and remembers the order in which the names were
// first set.
type Object struct {
	keys   []string
	values map[string]Value
}

func NewObject() *Object {
	return &Object{
		values: make(map[string]Value),
	}
}

func (_ *Object) Kind() Kind {
	return KindObject
}

func (o *Object) Set(key string, value Value) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

func (o *Object) Append(key string, value Value) {
	list, _ := o.values[key].(List)
	o.Set(key, append(list, value))
}

func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

func (o *Object) Keys() []string {
	return slices.Clone(o.keys)
}

func (o *Object) Len() int {
	return len(o.keys)
}

func AsScalar(v Value) (string, bool) {
	s, ok := v.(Scalar)
	return string(s), ok
}

func AsList(v Value) (List, bool) {
	list, ok := v.(List)
	return list, ok
}

func AsObject(v Value) (*Object, bool) {
	obj, ok := v.(*Object)
	return obj, ok
}

func IsNull(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Null)
	return ok
}

// Interface converts v to the generic values used by encoding packages:
// map[string]any, []any, string and nil.
func Interface(v Value) any {
	switch v := v.(type) {
	case Scalar:
		return string(v)
	case List:
		arr := make([]any, 0, len(v))
		for i := range v {
			arr = append(arr, Interface(v[i]))
		}
		return arr
	case *Object:
		obj := make(map[string]any)
		for _, k := range v.keys {
			obj[k] = Interface(v.values[k])
		}
		return obj
	default:
		return nil
	}
}
