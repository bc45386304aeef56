package casing_test

import (
	"testing"

	"github.com/midbel/dtdjson/casing"
)

func TestCasing(t *testing.T) {
	data := []struct {
		Input string
		Want  string
		Case  casing.CaseType
	}{
		{
			Input: "ent_seq",
			Want:  "ent_seq",
			Case:  casing.KeepCase,
		},
		{
			Input: "ent_seq",
			Want:  "ent-seq",
			Case:  casing.KebabCase,
		},
		{
			Input: "ent_seq",
			Want:  "entSeq",
			Case:  casing.CamelCase,
		},
		{
			Input: "xml:lang",
			Want:  "xml_lang",
			Case:  casing.SnakeCase,
		},
		{
			Input: "xml:content",
			Want:  "XmlContent",
			Case:  casing.PascalCase,
		},
		{
			Input: "JMdict",
			Want:  "jmdict",
			Case:  casing.SnakeCase,
		},
		{
			Input: "fooBar",
			Want:  "foo_bar",
			Case:  casing.SnakeCase,
		},
		{
			Input: "foo___-___BAR",
			Want:  "foo-bar",
			Case:  casing.KebabCase,
		},
		{
			Input: "  ---re_nokanji---  ",
			Want:  "reNokanji",
			Case:  casing.CamelCase,
		},
	}
	for _, d := range data {
		got := casing.To(d.Case, d.Input)
		if got != d.Want {
			t.Errorf("%s: result mismatched! want %s, got %s", d.Input, d.Want, got)
		}
	}
}

func TestParse(t *testing.T) {
	for _, str := range []string{"", "snake", "Kebab", "camel", "pascal", "keep"} {
		if _, err := casing.Parse(str); err != nil {
			t.Errorf("%s: unexpected error: %s", str, err)
		}
	}
	if _, err := casing.Parse("title"); err == nil {
		t.Errorf("unknown case type accepted")
	}
}
