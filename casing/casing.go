package casing

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type CaseType int8

const (
	KeepCase CaseType = iota
	SnakeCase
	KebabCase
	CamelCase
	PascalCase
)

func Parse(str string) (CaseType, error) {
	switch strings.ToLower(str) {
	case "", "keep":
		return KeepCase, nil
	case "snake":
		return SnakeCase, nil
	case "kebab":
		return KebabCase, nil
	case "camel":
		return CamelCase, nil
	case "pascal":
		return PascalCase, nil
	default:
		return KeepCase, fmt.Errorf("%s: unknown case type", str)
	}
}

// To rewrites an element or attribute name. Hyphens, underscores, spaces,
// colons and dots separate words, as does a lower to upper case transition.
func To(to CaseType, str string) string {
	if to == KeepCase {
		return str
	}
	list := words(str)
	switch to {
	case SnakeCase:
		return strings.Join(list, "_")
	case KebabCase:
		return strings.Join(list, "-")
	case CamelCase:
		for i := 1; i < len(list); i++ {
			list[i] = title(list[i])
		}
		return strings.Join(list, "")
	case PascalCase:
		for i := range list {
			list[i] = title(list[i])
		}
		return strings.Join(list, "")
	default:
		return str
	}
}

func words(str string) []string {
	var (
		list []string
		curr strings.Builder
		last rune
	)
	flush := func() {
		if curr.Len() > 0 {
			list = append(list, curr.String())
			curr.Reset()
		}
	}
	for _, r := range str {
		switch {
		case isSep(r):
			flush()
		case unicode.IsUpper(r) && unicode.IsLower(last):
			flush()
			curr.WriteRune(unicode.ToLower(r))
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			curr.WriteRune(unicode.ToLower(r))
		}
		last = r
	}
	flush()
	return list
}

func title(str string) string {
	r, z := utf8.DecodeRuneInString(str)
	return string(unicode.ToUpper(r)) + str[z:]
}

func isSep(r rune) bool {
	return r == '-' || r == '_' || r == ' ' || r == ':' || r == '.'
}
