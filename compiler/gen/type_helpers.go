package gen

import (
	"strings"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Pascal converts s to PascalCase ("created_at" -> "CreatedAt").
func Pascal(s string) string {
	if s == "" {
		return s
	}
	return inflect.Camelize(s)
}

// Camel converts s to camelCase ("CreatedAt" -> "createdAt").
func Camel(s string) string {
	if s == "" {
		return s
	}
	return inflect.CamelizeDownFirst(s)
}

// Snake converts s to snake_case ("CreatedAt" -> "created_at").
func Snake(s string) string {
	if s == "" {
		return s
	}
	return inflect.Underscore(s)
}

// TitleCase splits s into words and capitalizes each of them
// ("createdAt" -> "Created At").
func TitleCase(s string) string {
	words := splitWords(s)
	c := cases.Title(language.English)
	for i, w := range words {
		words[i] = c.String(w)
	}
	return strings.Join(words, " ")
}

// SentenceCase splits s into words and capitalizes the first one
// ("UserCreateInput" -> "User create input").
func SentenceCase(s string) string {
	words := splitWords(s)
	if len(words) > 0 {
		words[0] = cases.Title(language.English).String(words[0])
	}
	return strings.Join(words, " ")
}

func splitWords(s string) []string {
	return strings.FieldsFunc(Snake(s), func(r rune) bool { return r == '_' || r == ' ' || r == '-' })
}

// Names returns a set of the given identifiers.
func Names(ids ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(ids))
	for i := range ids {
		m[ids[i]] = struct{}{}
	}
	return m
}

// last returns the last element of a path, or "" for an empty path.
func last(path []string) string {
	if len(path) == 0 {
		return ""
	}
	return path[len(path)-1]
}

// parent returns path without its last element.
func parent(path []string) []string {
	if len(path) == 0 {
		return nil
	}
	return path[:len(path)-1]
}

// withLast returns a copy of path with its last element replaced by name.
func withLast(path []string, name string) []string {
	out := make([]string, 0, len(path))
	out = append(out, parent(path)...)
	return append(out, name)
}
