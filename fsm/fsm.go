package fsm

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

type Token struct {
	Type   string
	Value  string
	Offset int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%s)", t.Type, t.Value)
}

// Rule is one edge of a state graph. An empty Token consumes the matched
// text without emitting anything.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Token   string
	Next    string
}

func Match(name, pattern, token, next string) Rule {
	return Rule{
		Name:    name,
		Pattern: regexp.MustCompile(`^(?:` + pattern + `)`),
		Token:   token,
		Next:    next,
	}
}

func (r Rule) match(str string) (string, bool) {
	ix := r.Pattern.FindStringIndex(str)
	if ix == nil || ix[0] != 0 {
		return "", false
	}
	return str[:ix[1]], true
}

type Graph map[string][]Rule

type TraversalError struct {
	State  string
	Text   string
	Offset int
}

func (e TraversalError) Error() string {
	return fmt.Sprintf("cannot traverse state %q at offset %d: %q", e.State, e.Offset, e.Text)
}

type Machine struct {
	start string
	graph Graph
}

func New(start string, graph Graph) *Machine {
	return &Machine{
		start: start,
		graph: graph,
	}
}

func (m *Machine) Run(text string) ([]Token, error) {
	var (
		tokens []Token
		curr   = m.start
		rest   = trim(text)
		empty  int
	)
	for rest != "" {
		rules, ok := m.graph[curr]
		if !ok || len(rules) == 0 {
			return nil, m.fail(curr, text, rest)
		}
		var matched bool
		for _, r := range rules {
			str, ok := r.match(rest)
			if !ok {
				continue
			}
			if r.Token != "" {
				tokens = append(tokens, Token{
					Type:   r.Token,
					Value:  str,
					Offset: len(text) - len(rest),
				})
			}
			if str == "" {
				empty++
			} else {
				empty = 0
			}
			rest = trim(rest[len(str):])
			curr = r.Next
			matched = true
			break
		}
		if !matched || empty > len(m.graph) {
			return nil, m.fail(curr, text, rest)
		}
	}
	return tokens, nil
}

func (m *Machine) fail(state, text, rest string) error {
	return TraversalError{
		State:  state,
		Text:   text,
		Offset: len(text) - len(rest),
	}
}

func trim(str string) string {
	return strings.TrimLeftFunc(str, unicode.IsSpace)
}
