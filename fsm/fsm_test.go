package fsm_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/midbel/dtdjson/fsm"
)

func sample() *fsm.Machine {
	return fsm.New("key", fsm.Graph{
		"key": {
			fsm.Match("ident", `[a-z]+`, "key", "assign"),
		},
		"assign": {
			fsm.Match("equal", `=`, "", "value"),
		},
		"value": {
			fsm.Match("number", `[0-9]+`, "number", "sep"),
			fsm.Match("word", `[a-z0-9]+`, "word", "sep"),
		},
		"sep": {
			fsm.Match("semicolon", `;`, "", "key"),
		},
	})
}

func TestRun(t *testing.T) {
	data := []struct {
		Input string
		Want  []string
	}{
		{
			Input: "",
			Want:  nil,
		},
		{
			Input: "   ",
			Want:  nil,
		},
		{
			Input: "a=1",
			Want:  []string{"key(a)", "number(1)"},
		},
		{
			Input: "  a = 1 ; b=foo;",
			Want:  []string{"key(a)", "number(1)", "key(b)", "word(foo)"},
		},
	}
	m := sample()
	for _, d := range data {
		toks, err := m.Run(d.Input)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", d.Input, err)
			continue
		}
		var got []string
		for _, k := range toks {
			got = append(got, k.String())
		}
		if !slices.Equal(got, d.Want) {
			t.Errorf("%s: tokens mismatched", d.Input)
			t.Logf("want: %s", d.Want)
			t.Logf("got : %s", got)
		}
	}
}

func TestRunFirstMatchWins(t *testing.T) {
	toks, err := sample().Run("a=42")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if toks[1].Type != "number" {
		t.Errorf("first declared rule should win: got %s", toks[1].Type)
	}
	if toks[1].Offset != 2 {
		t.Errorf("offset mismatched: want 2, got %d", toks[1].Offset)
	}
}

func TestRunError(t *testing.T) {
	data := []struct {
		Input  string
		State  string
		Offset int
	}{
		{
			Input:  "1=a",
			State:  "key",
			Offset: 0,
		},
		{
			Input:  "a 1",
			State:  "assign",
			Offset: 2,
		},
		{
			Input:  "x=12ab",
			State:  "sep",
			Offset: 4,
		},
		{
			Input:  "a=?",
			State:  "value",
			Offset: 2,
		},
	}
	m := sample()
	for _, d := range data {
		_, err := m.Run(d.Input)
		var terr fsm.TraversalError
		if !errors.As(err, &terr) {
			t.Errorf("%s: expected traversal error, got %v", d.Input, err)
			continue
		}
		if terr.State != d.State || terr.Offset != d.Offset || terr.Text != d.Input {
			t.Errorf("%s: error mismatched: %+v", d.Input, terr)
		}
	}
}

func TestRunUndeclaredState(t *testing.T) {
	m := fsm.New("start", fsm.Graph{
		"start": {
			fsm.Match("open", `\(`, "open", "nowhere"),
		},
	})
	_, err := m.Run("((")
	var terr fsm.TraversalError
	if !errors.As(err, &terr) {
		t.Fatalf("expected traversal error, got %v", err)
	}
	if terr.State != "nowhere" || terr.Offset != 1 {
		t.Errorf("error mismatched: %+v", terr)
	}
	if toks, err := m.Run("("); err != nil || len(toks) != 1 {
		t.Errorf("input exhausted in any state should succeed: %v", err)
	}
}

func TestRunEmptyCycle(t *testing.T) {
	m := fsm.New("a", fsm.Graph{
		"a": {
			fsm.Match("skip", ``, "", "b"),
		},
		"b": {
			fsm.Match("skip", ``, "", "a"),
		},
	})
	_, err := m.Run("x")
	if !errors.As(err, new(fsm.TraversalError)) {
		t.Errorf("expected traversal error on empty cycle, got %v", err)
	}
}
