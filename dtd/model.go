package dtd

import (
	"fmt"
	"strings"

	"github.com/midbel/dtdjson/fsm"
)

const (
	tokOpen     = "open"
	tokClose    = "close"
	tokName     = "name"
	tokSep      = "continuation"
	tokModifier = "modifier"
)

const (
	pcdata  = "#PCDATA"
	empty   = "EMPTY"
	nameRgx = `[A-Za-z_:][A-Za-z0-9_:.-]*`
)

var contentModel = fsm.New("start", fsm.Graph{
	"start": {
		fsm.Match("begin-group", `\(`, tokOpen, "a"),
	},
	"a": {
		fsm.Match("begin-group", `\(`, tokOpen, "a"),
		fsm.Match("text", pcdata, tokName, "b"),
		fsm.Match("element", nameRgx, tokName, "c"),
	},
	"b": {
		fsm.Match("separator", `[|,]`, tokSep, "a"),
		fsm.Match("end-group", `\)`, tokClose, "d"),
	},
	"c": {
		fsm.Match("cardinality", `[*+?]`, tokModifier, "b"),
		fsm.Match("none", ``, "", "b"),
	},
	"d": {
		fsm.Match("cardinality", `[*+?]`, tokModifier, "b"),
		fsm.Match("none", ``, "", "b"),
	},
})

type ModelError struct {
	Expr  string
	Cause string
}

func (e ModelError) Error() string {
	return fmt.Sprintf("%s: %s", e.Expr, e.Cause)
}

type Child struct {
	Name string
	Rule
}

type Model struct {
	Children []Child
	Text     bool
	// Override is set by a choice, by #PCDATA or by a group modifier. All
	// the children of the model are then optional.
	Override bool
}

func ParseModel(expr string) (Model, error) {
	expr = strings.TrimSpace(expr)
	if expr == empty {
		return Model{}, nil
	}
	tokens, err := contentModel.Run(expr)
	if err != nil {
		return Model{}, err
	}
	return foldModel(expr, tokens)
}

func foldModel(expr string, tokens []fsm.Token) (Model, error) {
	var (
		model  Model
		groups []int
		last   = -1
		closed = -1
	)
	for _, tok := range tokens {
		switch tok.Type {
		case tokOpen:
			groups = append(groups, len(model.Children))
			last, closed = -1, -1
		case tokClose:
			if len(groups) == 0 {
				return model, ModelError{Expr: expr, Cause: "unbalanced group"}
			}
			closed = groups[len(groups)-1]
			groups = groups[:len(groups)-1]
			last = -1
		case tokSep:
			if tok.Value == "|" {
				model.Override = true
			}
			last, closed = -1, -1
		case tokName:
			if tok.Value == pcdata {
				model.Text = true
				model.Override = true
				continue
			}
			child := Child{
				Name: tok.Value,
				Rule: Rule{Required: true},
			}
			model.Children = append(model.Children, child)
			last, closed = len(model.Children)-1, -1
		case tokModifier:
			if last >= 0 {
				applyModifier(&model.Children[last].Rule, tok.Value)
			} else if closed >= 0 {
				model.Override = true
				if tok.Value != "?" {
					for i := closed; i < len(model.Children); i++ {
						model.Children[i].Many = true
					}
				}
			}
			last, closed = -1, -1
		}
	}
	if len(groups) > 0 {
		return model, ModelError{Expr: expr, Cause: "unbalanced group"}
	}
	if model.Override {
		for i := range model.Children {
			model.Children[i].Required = false
		}
	}
	return model, nil
}

func applyModifier(r *Rule, mod string) {
	switch mod {
	case "*":
		r.Many = true
		r.Required = false
	case "+":
		r.Many = true
		r.Required = true
	case "?":
		r.Many = false
		r.Required = false
	}
}
