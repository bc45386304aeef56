package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/midbel/cli"
	"github.com/pkg/errors"

	"github.com/midbel/dtdjson/casing"
	"github.com/midbel/dtdjson/convert"
	"github.com/midbel/dtdjson/dtd"
	"github.com/midbel/dtdjson/json"
)

var convertCmd = cli.Command{
	Name:    "convert",
	Alias:   []string{"conv"},
	Summary: "convert xml dictionaries to json",
	Handler: &ConvertCmd{},
}

type ConvertCmd struct {
	Dir     string
	Key     string
	Compact bool
	Whole   bool
	Case    string
	Quiet   bool
	convert.Options

	cache *convert.Cache
}

func (c *ConvertCmd) Run(args []string) error {
	set := cli.NewFlagSet("convert")
	set.StringVar(&c.Dir, "d", "", "directory where json files are written")
	set.StringVar(&c.Key, "key", "", "name of the repeated element written one per line")
	set.StringVar(&c.Case, "case", "", "rewrite keys to given case (snake, kebab, camel, pascal)")
	set.BoolVar(&c.Compact, "compact", false, "write compact json")
	set.BoolVar(&c.Whole, "whole", false, "write the root element as a single json object")
	set.BoolVar(&c.Quiet, "quiet", false, "only report files that fail")
	set.BoolVar(&c.ExpandEntities, "expand", false, "replace entity references by their values")
	set.BoolVar(&c.ApplyDefaults, "defaults", false, "fill missing attributes with their declared default")
	set.BoolVar(&c.Normalize, "nfc", false, "normalize text to unicode NFC")
	set.BoolVar(&c.Lenient, "lenient", false, "skip lines that are not tags")
	set.BoolVar(&c.Trace, "trace", false, "trace declarations and elements")
	if err := set.Parse(args); err != nil {
		return err
	}
	kase, err := casing.Parse(c.Case)
	if err != nil {
		return err
	}
	if c.Dir != "" {
		if err := os.MkdirAll(c.Dir, 0755); err != nil {
			return err
		}
	}
	var failed int
	for _, file := range set.Args() {
		var (
			out = c.outputFile(file)
			err error
		)
		spin := NewSpinner()
		spin.SetMessage(filepath.Base(file))
		if c.Quiet || c.Trace {
			spin.Disable()
		}
		spin.Run(func() {
			err = c.convertFile(file, out, kase)
		})
		if err != nil {
			failed++
			reportError(file, err)
			continue
		}
		if !c.Quiet {
			reportSuccess(file, out)
		}
	}
	if failed > 0 {
		return errFail
	}
	return nil
}

func (c *ConvertCmd) convertFile(file, out string, kase casing.CaseType) error {
	if c.cache == nil {
		c.cache = convert.NewCache()
	}
	doc, err := c.cache.Load(file, c.Options)
	if err != nil {
		return err
	}
	w, err := os.Create(out)
	if err != nil {
		return errors.WithStack(err)
	}
	err = c.writeDocument(w, doc, kase)
	if e := w.Close(); err == nil && e != nil {
		err = errors.WithStack(e)
	}
	if err != nil {
		os.Remove(out)
	}
	return err
}

func (c *ConvertCmd) writeDocument(w io.Writer, doc *convert.Document, kase casing.CaseType) error {
	ws := json.NewWriter(w)
	ws.Compact = c.Compact
	ws.Case = kase

	key := c.Key
	if key == "" && !c.Whole {
		key = entriesKey(doc.Schema)
	}
	if key == "" {
		return ws.Write(doc.Root)
	}
	return ws.WriteEntries(doc.Root, key)
}

func (c *ConvertCmd) outputFile(file string) string {
	name := filepath.Base(file)
	name = strings.TrimSuffix(name, filepath.Ext(name)) + ".json"
	if c.Dir == "" {
		return filepath.Join(filepath.Dir(file), name)
	}
	return filepath.Join(c.Dir, name)
}

// entriesKey gives the only repeatable child of the root element.
func entriesKey(schema *dtd.Schema) string {
	var key string
	for _, name := range schema.Children(schema.Root) {
		rule, _ := schema.Lookup(schema.Root, name)
		if !rule.Many {
			continue
		}
		if key != "" {
			return ""
		}
		key = name
	}
	return key
}
