package tree

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateRoot       = errors.New("more than one root element")
	ErrMissingRoot         = errors.New("root element missing")
	ErrInvalidChild        = errors.New("not a valid child element")
	ErrCardinality         = errors.New("element can not be repeated")
	ErrUnexpectedAttribute = errors.New("unexpected attribute")
	ErrUnmatchedTag        = errors.New("unmatched closing tag")
	ErrMissingRequired     = errors.New("missing required field")
	ErrUnexpectedEnd       = errors.New("unexpected end of input")
	ErrUnfold              = errors.New("value can not be unfolded")
)

type Error struct {
	Line    int
	Element string
	Name    string
	Err     error
}

func createError(line int, elem, name string, err error) error {
	return Error{
		Line:    line,
		Element: elem,
		Name:    name,
		Err:     err,
	}
}

func (e Error) Error() string {
	var prefix string
	if e.Line > 0 {
		prefix = fmt.Sprintf("line %d: ", e.Line)
	}
	if e.Name == "" {
		return fmt.Sprintf("%s%s: %s", prefix, e.Element, e.Err)
	}
	return fmt.Sprintf("%s%s: %s %q", prefix, e.Element, e.Err, e.Name)
}

func (e Error) Unwrap() error {
	return e.Err
}
