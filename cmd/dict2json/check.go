package main

import (
	"github.com/midbel/cli"

	"github.com/midbel/dtdjson/convert"
)

var checkCmd = cli.Command{
	Name:    "check",
	Summary: "check that documents conform to their document type definition",
	Handler: &CheckCmd{},
}

type CheckCmd struct {
	FailFast bool
	convert.Options
}

func (c *CheckCmd) Run(args []string) error {
	set := cli.NewFlagSet("check")
	set.BoolVar(&c.FailFast, "fail-fast", false, "stop checking files as soon as first error is encountered")
	set.BoolVar(&c.ExpandEntities, "expand", false, "check that entity references are defined")
	set.BoolVar(&c.Lenient, "lenient", false, "skip lines that are not tags")
	set.BoolVar(&c.Trace, "trace", false, "trace declarations and elements")
	if err := set.Parse(args); err != nil {
		return err
	}
	var failed int
	for _, file := range set.Args() {
		if _, err := convert.ParseFile(file, c.Options); err != nil {
			reportError(file, err)
			if c.FailFast {
				return errFail
			}
			failed++
			continue
		}
		reportValid(file)
	}
	if failed > 0 {
		return errFail
	}
	return nil
}
