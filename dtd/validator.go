package dtd

import (
	"regexp"
	"strings"
)

const (
	required = "#REQUIRED"
	implied  = "#IMPLIED"
	fixed    = "#FIXED"
)

var (
	reDoctype = regexp.MustCompile(`^\s*<!DOCTYPE\s+(\S+)\s+\[\s*$`)
	reClose   = regexp.MustCompile(`^\s*\]\s*>`)
	reElement = regexp.MustCompile(`^\s*<!ELEMENT\s+(\S+)\s+([^>]+)>\s*$`)
	reAttlist = regexp.MustCompile(`^\s*<!ATTLIST\s+(\S+)\s+(\S+)\s+(\([^)]*\)|\S+)\s+([^>]+)>\s*$`)
	reEntity  = regexp.MustCompile(`^\s*<!ENTITY\s+(\S+)\s+"([^"]+)"\s*>\s*$`)
)

type directive func(string) (bool, error)

// Validator derives a Schema from the lines of an internal DOCTYPE subset.
// Lines are given one at a time in document order.
type Validator struct {
	Tracer

	defined    bool
	schema     *Schema
	directives []directive
}

func NewValidator() *Validator {
	v := Validator{
		Tracer: NoopTracer(),
		schema: NewSchema(),
	}
	v.directives = []directive{
		v.doctype,
		v.element,
		v.attlist,
		v.entity,
		v.doctypeClose,
	}
	return &v
}

// Observe reports whether the schema is complete. Once it is, every later line
// is ignored.
func (v *Validator) Observe(line string) (bool, error) {
	if v.defined {
		return true, nil
	}
	for _, fn := range v.directives {
		ok, err := fn(line)
		if err != nil {
			v.Tracer.Error(line, err)
			return false, err
		}
		if ok {
			return v.defined, nil
		}
	}
	return false, nil
}

func (v *Validator) Schema() (*Schema, bool) {
	if !v.defined {
		return nil, false
	}
	return v.schema, true
}

func (v *Validator) doctype(line string) (bool, error) {
	if v.schema.Root != "" {
		return false, nil
	}
	parts := reDoctype.FindStringSubmatch(line)
	if parts == nil {
		return false, nil
	}
	v.schema.Root = parts[1]
	v.Tracer.Declare("doctype", parts[1])
	return true, nil
}

func (v *Validator) element(line string) (bool, error) {
	parts := reElement.FindStringSubmatch(line)
	if parts == nil {
		return false, nil
	}
	model, err := ParseModel(parts[2])
	if err != nil {
		return false, err
	}
	for _, c := range model.Children {
		v.schema.Define(parts[1], c.Name, c.Rule)
	}
	v.Tracer.Declare("element", parts[1])
	return true, nil
}

func (v *Validator) attlist(line string) (bool, error) {
	parts := reAttlist.FindStringSubmatch(line)
	if parts == nil {
		return false, nil
	}
	var (
		value = strings.TrimSpace(parts[4])
		rule  = Rule{
			Attribute: true,
			Type:      parts[3],
		}
	)
	switch {
	case value == required:
		rule.Required = true
	case value == implied:
	case strings.HasPrefix(value, fixed):
		rule.Fixed = true
		rule.Default = unquote(strings.TrimSpace(strings.TrimPrefix(value, fixed)))
		rule.HasDefault = true
	default:
		rule.Default = unquote(value)
		rule.HasDefault = true
	}
	v.schema.Define(parts[1], parts[2], rule)
	v.Tracer.Declare("attribute", parts[1]+"@"+parts[2])
	return true, nil
}

func (v *Validator) entity(line string) (bool, error) {
	parts := reEntity.FindStringSubmatch(line)
	if parts == nil {
		return false, nil
	}
	v.schema.Entities.Define(parts[1], parts[2])
	v.Tracer.Declare("entity", parts[1])
	return true, nil
}

func (v *Validator) doctypeClose(line string) (bool, error) {
	if v.schema.Root == "" || !reClose.MatchString(line) {
		return false, nil
	}
	v.defined = true
	v.Tracer.Declare("schema", v.schema.Root)
	return true, nil
}

func unquote(str string) string {
	if len(str) < 2 {
		return str
	}
	return str[1 : len(str)-1]
}
