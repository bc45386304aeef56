package convert_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midbel/dtdjson/convert"
	"github.com/midbel/dtdjson/dtd"
	"github.com/midbel/dtdjson/tree"
	"github.com/midbel/dtdjson/xml"
)

const sample = "testdata/sample.xml"

const header = `<!DOCTYPE root [
<!ELEMENT root (item*)>
<!ELEMENT item (name, note?)>
<!ELEMENT name (#PCDATA)>
<!ELEMENT note (#PCDATA)>
<!ATTLIST item id CDATA #REQUIRED>
<!ENTITY x "extra">
]>`

func document(lines ...string) string {
	return header + "\n" + strings.Join(lines, "\n")
}

func TestParseFile(t *testing.T) {
	doc, err := convert.ParseFile(sample, convert.Options{})
	require.NoError(t, err)
	assert.Equal(t, sample, doc.File)
	assert.Equal(t, "JMdict", doc.Schema.Root)

	want := map[string]any{
		"entry": []any{
			map[string]any{
				"ent_seq": "1000000",
				"k_ele": []any{
					map[string]any{
						"keb":    "食べる",
						"ke_pri": []any{"ichi1", "news1"},
					},
				},
				"sense": []any{
					map[string]any{
						"pos": []any{"&v1;"},
						"gloss": []any{
							map[string]any{tree.ContentKey: "to eat"},
							map[string]any{"xml:lang": "fre", tree.ContentKey: "manger"},
						},
					},
				},
			},
			map[string]any{
				"ent_seq": "1000010",
				"sense": []any{
					map[string]any{
						"pos": []any{"&n;"},
						"gloss": []any{
							map[string]any{"g_type": "expl", tree.ContentKey: "greeting"},
						},
					},
				},
			},
		},
	}
	assert.Equal(t, want, tree.Interface(doc.Root))
}

func TestParseOptions(t *testing.T) {
	t.Run("expand", func(t *testing.T) {
		doc, err := convert.ParseFile(sample, convert.Options{ExpandEntities: true})
		require.NoError(t, err)
		entries, _ := doc.Root.(*tree.Object).Get("entry")
		list, ok := tree.AsList(entries)
		require.True(t, ok)
		require.Len(t, list, 2)

		got := tree.Interface(list[0]).(map[string]any)["sense"]
		pos := got.([]any)[0].(map[string]any)["pos"]
		assert.Equal(t, []any{"Ichidan verb"}, pos)
	})
	t.Run("defaults", func(t *testing.T) {
		doc, err := convert.ParseFile(sample, convert.Options{ApplyDefaults: true})
		require.NoError(t, err)
		entries, _ := doc.Root.(*tree.Object).Get("entry")
		list, _ := tree.AsList(entries)
		require.Len(t, list, 2)

		sense := tree.Interface(list[1]).(map[string]any)["sense"]
		gloss := sense.([]any)[0].(map[string]any)["gloss"]
		want := []any{
			map[string]any{"xml:lang": "eng", "g_type": "expl", tree.ContentKey: "greeting"},
		}
		assert.Equal(t, want, gloss)
	})
	t.Run("normalize", func(t *testing.T) {
		str := document(
			"<root>",
			"<item id=\"e\u0301\">",
			"<name>cafe\u0301</name>",
			"</item>",
			"</root>",
		)
		doc, err := convert.ParseString(str, convert.Options{Normalize: true})
		require.NoError(t, err)
		want := map[string]any{
			"item": []any{
				map[string]any{"id": "\u00e9", "name": "caf\u00e9"},
			},
		}
		assert.Equal(t, want, tree.Interface(doc.Root))
	})
	t.Run("lenient", func(t *testing.T) {
		str := document(
			"<root>",
			"stray text",
			`<item id="1">`,
			"<name>a</name>",
			"</item>",
			"</root>",
		)
		_, err := convert.ParseString(str, convert.Options{})
		var serr convert.SyntaxError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, 10, serr.Line)
		assert.Equal(t, "stray text", serr.Text)

		doc, err := convert.ParseString(str, convert.Options{Lenient: true})
		require.NoError(t, err)
		want := map[string]any{
			"item": []any{
				map[string]any{"id": "1", "name": "a"},
			},
		}
		assert.Equal(t, want, tree.Interface(doc.Root))
	})
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		Name    string
		Input   string
		Options convert.Options
		Err     error
	}{
		{
			Name:  "no-schema",
			Input: "<root>\n</root>",
			Err:   convert.ErrSchema,
		},
		{
			Name:  "unterminated-doctype",
			Input: "<!DOCTYPE root [\n<!ELEMENT root (item*)>",
			Err:   convert.ErrSchema,
		},
		{
			Name:  "duplicate-root",
			Input: document("<root>", "</root>", "<root>", "</root>"),
			Err:   tree.ErrDuplicateRoot,
		},
		{
			Name:  "missing-root",
			Input: document(`<item id="1">`, "</item>"),
			Err:   tree.ErrMissingRoot,
		},
		{
			Name:  "empty-body",
			Input: document(),
			Err:   tree.ErrMissingRoot,
		},
		{
			Name:  "invalid-child",
			Input: document("<root>", "<name>a</name>", "</root>"),
			Err:   tree.ErrInvalidChild,
		},
		{
			Name:  "cardinality",
			Input: document("<root>", `<item id="1">`, "<name>a</name>", "<name>b</name>", "</item>", "</root>"),
			Err:   tree.ErrCardinality,
		},
		{
			Name:  "unexpected-attribute",
			Input: document("<root>", `<item id="1" lang="fr">`, "<name>a</name>", "</item>", "</root>"),
			Err:   tree.ErrUnexpectedAttribute,
		},
		{
			Name:  "missing-required",
			Input: document("<root>", `<item id="1">`, "<note>a</note>", "</item>", "</root>"),
			Err:   tree.ErrMissingRequired,
		},
		{
			Name:  "unterminated-document",
			Input: document("<root>", `<item id="1">`, "<name>a</name>"),
			Err:   tree.ErrUnexpectedEnd,
		},
		{
			Name:    "multiline-tag",
			Input:   document("<root>", `<item id="1">`, "<name>a", "</name>", "</item>", "</root>"),
			Options: convert.Options{Lenient: true},
			Err:     tree.ErrUnmatchedTag,
		},
		{
			Name:    "undefined-entity",
			Input:   document("<root>", `<item id="1">`, "<name>&y;</name>", "</item>", "</root>"),
			Options: convert.Options{ExpandEntities: true},
			Err:     dtd.ErrUndefined,
		},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			doc, err := convert.ParseString(tt.Input, tt.Options)
			assert.Nil(t, doc)
			require.Error(t, err)
			if !errors.Is(err, tt.Err) {
				t.Errorf("errors mismatched")
				t.Logf("want: %s", tt.Err)
				t.Logf("got : %s", err)
			}
		})
	}
}

func TestParseMultilineTag(t *testing.T) {
	str := document("<root>", `<item id="1">`, "<name>a", "</name>", "</item>", "</root>")
	_, err := convert.ParseString(str, convert.Options{})

	var serr convert.SyntaxError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 11, serr.Line)
	assert.Equal(t, "<name>a", serr.Text)
}

func TestParseEntities(t *testing.T) {
	str := document(
		"<root>",
		`<item id="&#65;">`,
		"<name>&x; &amp; more</name>",
		"</item>",
		"</root>",
	)
	doc, err := convert.ParseString(str, convert.Options{ExpandEntities: true})
	require.NoError(t, err)
	want := map[string]any{
		"item": []any{
			map[string]any{"id": "A", "name": "extra & more"},
		},
	}
	assert.Equal(t, want, tree.Interface(doc.Root))
}

func TestParseSchemaOnce(t *testing.T) {
	str := document(
		"<root>",
		`<item id="1">`,
		"<name>a</name>",
		"</item>",
		"</root>",
	)
	first, err := convert.ParseString(str, convert.Options{})
	require.NoError(t, err)
	second, err := convert.ParseString(str, convert.Options{})
	require.NoError(t, err)

	assert.Equal(t, first.Schema.Names("item"), second.Schema.Names("item"))
	assert.Equal(t, tree.Interface(first.Root), tree.Interface(second.Root))
}

func TestRoundTrip(t *testing.T) {
	doc, err := convert.ParseFile(sample, convert.Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, xml.NewWriter(&buf).Write(doc.Schema, doc.Root))

	again, err := convert.ParseString(buf.String(), convert.Options{})
	require.NoError(t, err)
	assert.Equal(t, tree.Interface(doc.Root), tree.Interface(again.Root))
}

func TestCache(t *testing.T) {
	cache := convert.NewCache()

	first, err := cache.Load(sample, convert.Options{})
	require.NoError(t, err)
	second, err := cache.Load(sample, convert.Options{})
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, cache.Len())

	third, err := cache.Load(sample, convert.Options{ExpandEntities: true})
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, cache.Len())

	_, err = cache.Load("testdata/missing.xml", convert.Options{})
	assert.Error(t, err)
	assert.Equal(t, 2, cache.Len())

	cache.Forget(sample)
	assert.Equal(t, 0, cache.Len())
}

func TestParseEmptyElement(t *testing.T) {
	str := document(
		"<root>",
		`<item id="1">`,
		"<name>a</name>",
		"<note></note>",
		"</item>",
		"</root>",
	)
	doc, err := convert.ParseString(str, convert.Options{})
	require.NoError(t, err)
	want := map[string]any{
		"item": []any{
			map[string]any{"id": "1", "name": "a", "note": nil},
		},
	}
	assert.Equal(t, want, tree.Interface(doc.Root))
}
