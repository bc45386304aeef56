package dtd

import (
	"fmt"
	"slices"
)

// Rule describes how a name may appear below an element: either as an
// attribute or as a child element.
type Rule struct {
	Attribute  bool
	Required   bool
	Many       bool
	Fixed      bool
	Type       string
	Default    string
	HasDefault bool
}

func (r Rule) Arity() string {
	switch {
	case r.Required && r.Many:
		return "+"
	case r.Many:
		return "*"
	case !r.Required:
		return "?"
	default:
		return ""
	}
}

func (r Rule) String() string {
	kind := "element"
	if r.Attribute {
		kind = "attribute"
	}
	return fmt.Sprintf("%s%s", kind, r.Arity())
}

type Schema struct {
	Root     string
	Elements map[string]map[string]Rule
	Entities *Entities

	order map[string][]string
}

func NewSchema() *Schema {
	return &Schema{
		Elements: make(map[string]map[string]Rule),
		Entities: Enclosed(Predefined()),
		order:    make(map[string][]string),
	}
}

func (s *Schema) Define(parent, name string, rule Rule) {
	set, ok := s.Elements[parent]
	if !ok {
		set = make(map[string]Rule)
		s.Elements[parent] = set
	}
	if _, ok := set[name]; !ok {
		s.order[parent] = append(s.order[parent], name)
	}
	set[name] = rule
}

// Rules returns the set of rules declared for elem. A false result means elem
// is a text-only leaf.
func (s *Schema) Rules(elem string) (map[string]Rule, bool) {
	set, ok := s.Elements[elem]
	return set, ok
}

func (s *Schema) Lookup(parent, name string) (Rule, bool) {
	r, ok := s.Elements[parent][name]
	return r, ok
}

func (s *Schema) IsLeaf(elem string) bool {
	_, ok := s.Elements[elem]
	return !ok
}

// Names gives the names declared for elem in declaration order.
func (s *Schema) Names(elem string) []string {
	return slices.Clone(s.order[elem])
}

func (s *Schema) Attributes(elem string) []string {
	var list []string
	for _, n := range s.order[elem] {
		if s.Elements[elem][n].Attribute {
			list = append(list, n)
		}
	}
	return list
}

func (s *Schema) Children(elem string) []string {
	var list []string
	for _, n := range s.order[elem] {
		if !s.Elements[elem][n].Attribute {
			list = append(list, n)
		}
	}
	return list
}

func (s *Schema) Expand(str string) (string, error) {
	return s.Entities.Expand(str)
}
