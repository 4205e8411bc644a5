package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	"strings"
	texttemplate "text/template"

	"experano/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// executable is the surface shared by html/template and text/template.
type executable interface {
	Execute(w io.Writer, data any) error
}

// parseHTML and parseText unify the two template packages behind executable,
// so every part of an email renders through the same path. HTML parts get
// contextual escaping, subject and text parts stay literal.
func parseHTML(name, raw string) (executable, error) { return htmltemplate.New(name).Parse(raw) }
func parseText(name, raw string) (executable, error) { return texttemplate.New(name).Parse(raw) }

// templateRenderer implements domain.EmailTemplateRenderer from the embedded
// templates folder. An email named "preferences_saved" is assembled from
// preferences_saved_subject.txt, preferences_saved.html, and
// preferences_saved.txt.
type templateRenderer struct{}

// NewTemplateRenderer returns an EmailTemplateRenderer backed by the embedded templates.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{}
}

func (r *templateRenderer) Render(templateName string, data any) (subject, htmlBody, textBody string, err error) {
	parts := []struct {
		file  string
		parse func(name, raw string) (executable, error)
		out   *string
	}{
		{templateName + "_subject.txt", parseText, &subject},
		{templateName + ".html", parseHTML, &htmlBody},
		{templateName + ".txt", parseText, &textBody},
	}
	for _, p := range parts {
		if *p.out, err = r.renderPart(p.file, p.parse, data); err != nil {
			return "", "", "", fmt.Errorf("render %s: %w", p.file, err)
		}
	}
	return strings.TrimSpace(subject), htmlBody, textBody, nil
}

func (r *templateRenderer) renderPart(file string, parse func(name, raw string) (executable, error), data any) (string, error) {
	raw, err := templateFS.ReadFile("templates/" + file)
	if err != nil {
		return "", err
	}
	t, err := parse(file, string(raw))
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
