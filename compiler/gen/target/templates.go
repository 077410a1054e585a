package target

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/syssam/teogen/compiler/gen"
)

//go:embed templates/*
var templateFS embed.FS

// funcs are shared by every template.
func funcs() template.FuncMap {
	return template.FuncMap{
		"pascal":  gen.Pascal,
		"camel":   gen.Camel,
		"snake":   gen.Snake,
		"join":    strings.Join,
		"upper":   strings.ToUpper,
		"lower":   strings.ToLower,
		"indent":  indent,
		"comment": comment,
		"quote":   quote,
		"add":     func(a, b int) int { return a + b },
		"dict":    dict,
	}
}

// mustParse parses templates/<name> with the shared funcs plus extra.
// The "include" func executes a named template of the same set and returns
// its output, so recursive templates can pipe children through indent.
func mustParse(name string, extra template.FuncMap) *template.Template {
	t := template.New(name)
	fm := funcs()
	for k, v := range extra {
		fm[k] = v
	}
	fm["include"] = func(name string, data any) (string, error) {
		var b strings.Builder
		err := t.ExecuteTemplate(&b, name, data)
		return b.String(), err
	}
	return template.Must(t.Funcs(fm).ParseFS(templateFS, "templates/"+name))
}

func execute(t *template.Template, data any) ([]byte, error) {
	var b bytes.Buffer
	if err := t.Execute(&b, data); err != nil {
		return nil, gen.NewGenerationError(t.Name(), "", "execute template", err)
	}
	return b.Bytes(), nil
}

// indent prefixes every non-empty line of s with n spaces.
func indent(n int, s string) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}

// comment renders text as a line comment block with the given prefix.
func comment(prefix, text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(prefix+" "+l, " ")
	}
	return strings.Join(lines, "\n")
}

func quote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

// dict builds a map from alternating keys and values.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		k, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[k] = pairs[i+1]
	}
	return m, nil
}
