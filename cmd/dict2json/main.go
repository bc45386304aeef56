package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/midbel/cli"
)

var errFail = errors.New("fail")

var (
	summary = "dict2json converts line oriented xml dictionaries to json"
	help    = `dict2json reads documents carrying their own internal DTD subset and
writes one json document per input file.

The document type definition is used to decide which elements can be
repeated, which children are required and which attributes are allowed.
Each structural unit of the body (a tag or an element with its text) is
expected on its own line.`
)

func main() {
	var (
		set  = cli.NewFlagSet("dict2json")
		root = prepare()
	)
	root.SetSummary(summary)
	root.SetHelp(help)
	if err := set.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			root.Help()
			os.Exit(2)
		}
	}
	err := root.Execute(set.Args())
	if err != nil {
		if s, ok := err.(cli.SuggestionError); ok && len(s.Others) > 0 {
			fmt.Fprintln(os.Stderr, "similar command(s)")
			for _, n := range s.Others {
				fmt.Fprintln(os.Stderr, "-", n)
			}
		}
		if !errors.Is(err, errFail) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func prepare() *cli.CommandTrie {
	root := cli.New()
	root.Register([]string{"convert"}, &convertCmd)
	root.Register([]string{"check"}, &checkCmd)
	root.Register([]string{"schema"}, &schemaCmd)
	root.Register([]string{"schema", "print"}, &schemaCmd)
	root.Register([]string{"schema", "doctype"}, &doctypeCmd)

	return root
}
