package convert

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"

	"github.com/midbel/dtdjson/dtd"
	"github.com/midbel/dtdjson/tags"
	"github.com/midbel/dtdjson/tree"
)

const MaxLineSize = 1 << 20

var ErrSchema = errors.New("document type definition missing or incomplete")

var reComment = regexp.MustCompile(`^\s*<!--.*-->\s*$`)

type SyntaxError struct {
	Line int
	Text string
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("line %d: not a tag: %q", e.Line, e.Text)
}

type Options struct {
	ExpandEntities bool
	ApplyDefaults  bool
	Normalize      bool
	Lenient        bool
	Trace          bool
}

type Document struct {
	File   string
	Schema *dtd.Schema
	Root   tree.Value
}

type Parser struct {
	Options

	scan *bufio.Scanner
	line int
}

func NewParser(r io.Reader) *Parser {
	scan := bufio.NewScanner(r)
	scan.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	return &Parser{
		scan: scan,
	}
}

func ParseFile(file string, opts Options) (*Document, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer r.Close()

	p := NewParser(r)
	p.Options = opts
	doc, err := p.Parse()
	if err != nil {
		return nil, errors.WithMessage(err, file)
	}
	doc.File = file
	return doc, nil
}

func ParseString(str string, opts Options) (*Document, error) {
	p := NewParser(strings.NewReader(str))
	p.Options = opts
	return p.Parse()
}

func (p *Parser) Parse() (*Document, error) {
	schema, err := p.ParseSchema()
	if err != nil {
		return nil, err
	}
	builder := tree.NewBuilder(schema)
	builder.ApplyDefaults = p.ApplyDefaults
	if p.Trace {
		builder.Tracer = tree.Stderr()
	}
	for p.scan.Scan() {
		p.line++
		ev, ok, err := p.lex(schema, p.scan.Text())
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if err := builder.Next(ev); err != nil {
			return nil, err
		}
	}
	if err := p.scan.Err(); err != nil {
		return nil, errors.Wrapf(err, "line %d", p.line)
	}
	root, err := builder.Result()
	if err != nil {
		return nil, err
	}
	doc := Document{
		Schema: schema,
		Root:   root,
	}
	return &doc, nil
}

func (p *Parser) ParseSchema() (*dtd.Schema, error) {
	valid := dtd.NewValidator()
	if p.Trace {
		valid.Tracer = dtd.Stderr()
	}
	for p.scan.Scan() {
		p.line++
		ok, err := valid.Observe(p.scan.Text())
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", p.line)
		}
		if !ok {
			continue
		}
		schema, _ := valid.Schema()
		return schema, nil
	}
	if err := p.scan.Err(); err != nil {
		return nil, errors.Wrapf(err, "line %d", p.line)
	}
	return nil, ErrSchema
}

func (p *Parser) lex(schema *dtd.Schema, str string) (tags.Event, bool, error) {
	ev, ok := tags.Lex(p.line, str)
	if !ok {
		if p.Lenient || strings.TrimSpace(str) == "" || reComment.MatchString(str) {
			return ev, false, nil
		}
		return ev, false, SyntaxError{Line: p.line, Text: str}
	}
	var err error
	if ev.HasText {
		ev.Text, err = p.rewrite(schema, ev.Text)
	}
	for k, v := range ev.Attrs {
		if err != nil {
			break
		}
		ev.Attrs[k], err = p.rewrite(schema, v)
	}
	if err != nil {
		return ev, false, errors.Wrapf(err, "line %d: %s", p.line, ev.Name)
	}
	return ev, true, nil
}

func (p *Parser) rewrite(schema *dtd.Schema, str string) (string, error) {
	if p.ExpandEntities {
		var err error
		if str, err = schema.Expand(str); err != nil {
			return str, err
		}
	}
	if p.Normalize {
		str = norm.NFC.String(str)
	}
	return str, nil
}
