package dtd

import (
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

var ErrUndefined = errors.New("undefined entity")

var reference = regexp.MustCompile(`&(#x[0-9A-Fa-f]+|#[0-9]+|[A-Za-z_:][A-Za-z0-9_:.-]*);`)

type Entities struct {
	values map[string]string
	parent *Entities
}

func Predefined() *Entities {
	e := Enclosed(nil)
	e.Define("lt", "<")
	e.Define("gt", ">")
	e.Define("amp", "&")
	e.Define("quot", `"`)
	e.Define("apos", "'")
	return e
}

func Enclosed(parent *Entities) *Entities {
	return &Entities{
		values: make(map[string]string),
		parent: parent,
	}
}

func (e *Entities) Define(name, value string) {
	e.values[name] = value
}

func (e *Entities) Resolve(name string) (string, error) {
	if v, ok := e.values[name]; ok {
		return v, nil
	}
	if e.parent != nil {
		return e.parent.Resolve(name)
	}
	return "", fmt.Errorf("%s: %w", name, ErrUndefined)
}

// Names only lists the entities of the innermost scope.
func (e *Entities) Names() []string {
	list := slices.Collect(maps.Keys(e.values))
	slices.Sort(list)
	return list
}

func (e *Entities) Len() int {
	return len(e.values)
}

func (e *Entities) Expand(str string) (string, error) {
	if !strings.Contains(str, "&") {
		return str, nil
	}
	var err error
	str = reference.ReplaceAllStringFunc(str, func(ref string) string {
		if err != nil {
			return ref
		}
		name := ref[1 : len(ref)-1]
		if strings.HasPrefix(name, "#") {
			var r rune
			r, err = charRef(name[1:])
			return string(r)
		}
		var val string
		val, err = e.Resolve(name)
		return val
	})
	return str, err
}

func charRef(str string) (rune, error) {
	var (
		n   uint64
		err error
	)
	if rest, ok := strings.CutPrefix(str, "x"); ok {
		n, err = strconv.ParseUint(rest, 16, 32)
	} else {
		n, err = strconv.ParseUint(str, 10, 32)
	}
	if err != nil || !utf8.ValidRune(rune(n)) {
		return 0, fmt.Errorf("&#%s;: invalid character reference", str)
	}
	return rune(n), nil
}
