package main

import (
	"os"

	"github.com/midbel/cli"

	"github.com/midbel/dtdjson/convert"
	"github.com/midbel/dtdjson/dtd"
	"github.com/midbel/dtdjson/xml"
)

var schemaCmd = cli.Command{
	Name:    "schema",
	Summary: "print the rules derived from the document type definition",
	Handler: &SchemaCmd{},
}

var doctypeCmd = cli.Command{
	Name:    "doctype",
	Summary: "print the document type definition as understood by dict2json",
	Handler: &SchemaCmd{Doctype: true},
}

type SchemaCmd struct {
	Doctype bool
}

func (c *SchemaCmd) Run(args []string) error {
	set := cli.NewFlagSet("schema")
	if err := set.Parse(args); err != nil {
		return err
	}
	schema, err := loadSchema(set.Arg(0))
	if err != nil {
		return err
	}
	if c.Doctype {
		return xml.NewWriter(os.Stdout).WriteDoctype(schema)
	}
	dtd.Print(os.Stdout, schema)
	return nil
}

func loadSchema(file string) (*dtd.Schema, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return convert.NewParser(r).ParseSchema()
}
