package blocks

import (
	"bytes"
	"fmt"
	"html/template"
)

var funcs = template.FuncMap{
	"get":   get,
	"items": items,
	"strs":  strs,
	"md": func(m any, key string) template.HTML {
		return Markdown(get(m, key))
	},
}

func asMap(m any) map[string]any {
	switch t := m.(type) {
	case Props:
		return t
	case map[string]any:
		return t
	}
	return nil
}

func get(m any, key string) string {
	v, ok := asMap(m)[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func items(m any, key string) []map[string]any {
	var out []map[string]any
	switch list := asMap(m)[key].(type) {
	case []any:
		for _, e := range list {
			if row := asMap(e); row != nil {
				out = append(out, row)
			}
		}
	case []map[string]any:
		out = list
	}
	return out
}

func strs(m any, key string) []string {
	var out []string
	switch list := asMap(m)[key].(type) {
	case []any:
		for _, e := range list {
			if e != nil {
				out = append(out, fmt.Sprint(e))
			}
		}
	case []string:
		out = list
	}
	return out
}

// templateRenderer compiles src once and renders props through it.
func templateRenderer(name, src string) RenderFunc {
	t := template.Must(template.New(name).Funcs(funcs).Parse(src))
	return func(props Props) (template.HTML, error) {
		var buf bytes.Buffer
		if err := t.Execute(&buf, props); err != nil {
			return "", err
		}
		return template.HTML(buf.String()), nil
	}
}
