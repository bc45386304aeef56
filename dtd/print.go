package dtd

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

func Print(w io.Writer, schema *Schema) {
	printElement(w, schema, schema.Root, "", nil)
	if names := schema.Entities.Names(); len(names) > 0 {
		fmt.Fprintln(w, "entities[")
		for _, n := range names {
			v, _ := schema.Entities.Resolve(n)
			fmt.Fprintf(w, "  %s = %q", n, v)
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, "]")
	}
}

func printElement(w io.Writer, schema *Schema, name, arity string, path []string) {
	prefix := strings.Repeat(" ", len(path)*2)
	fmt.Fprint(w, prefix)
	fmt.Fprintf(w, "element(%s)%s", name, arity)
	if slices.Contains(path, name) {
		fmt.Fprintln(w, " ...")
		return
	}
	names := schema.Names(name)
	if len(names) == 0 {
		fmt.Fprintln(w)
		return
	}
	fmt.Fprintln(w, "[")
	path = append(path, name)
	for _, n := range names {
		rule, _ := schema.Lookup(name, n)
		if !rule.Attribute {
			printElement(w, schema, n, rule.Arity(), path)
			continue
		}
		fmt.Fprint(w, prefix+"  ")
		fmt.Fprintf(w, "attribute(%s)%s", n, rule.Arity())
		if rule.HasDefault {
			fmt.Fprintf(w, " = %q", rule.Default)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprint(w, prefix)
	fmt.Fprintln(w, "]")
}
