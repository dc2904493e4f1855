package render

import (
	"bytes"
	"strings"
	"text/template"
)

// renderTemplate replaces template variables using Go's text/template
// package. Missing keys render as empty strings rather than failing the
// whole reply.
func renderTemplate(text string, state map[string]any) (string, error) {
	if !strings.Contains(text, "{{") { // fast path: no template markers
		return text, nil
	}

	tmpl, err := template.New("reply").Option("missingkey=zero").Parse(text)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, state); err != nil {
		return "", err
	}
	return buf.String(), nil
}
