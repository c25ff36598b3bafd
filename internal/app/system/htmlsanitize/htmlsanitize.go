// Package htmlsanitize cleans free text that arrives from the public relief
// intake forms (notes, addresses, names) before it is displayed or exported.
//
// The API stores whatever submitters typed, so a note may contain markup.
// Nothing from the API is ever rendered as HTML as-is.
package htmlsanitize

import (
	"html"
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictOnce sync.Once
	strict     *bluemonday.Policy

	ugcOnce sync.Once
	ugc     *bluemonday.Policy
)

func strictPolicy() *bluemonday.Policy {
	strictOnce.Do(func() {
		strict = bluemonday.StrictPolicy()
	})
	return strict
}

func ugcPolicy() *bluemonday.Policy {
	ugcOnce.Do(func() {
		ugc = bluemonday.UGCPolicy()
	})
	return ugc
}

// PlainText strips all markup from s and decodes entities, returning text
// suitable for CSV cells, clipboard rows and terminal output. Line breaks
// in the original text are kept.
func PlainText(s string) string {
	if s == "" || IsPlainText(s) && !strings.Contains(s, "&") {
		return strings.TrimSpace(s)
	}
	stripped := strictPolicy().Sanitize(s)
	return strings.TrimSpace(html.UnescapeString(stripped))
}

// Sanitize removes dangerous markup from s while keeping basic formatting.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return ugcPolicy().Sanitize(s)
}

// IsPlainText reports whether s looks free of markup.
func IsPlainText(s string) bool {
	return !(strings.Contains(s, "<") && strings.Contains(s, ">"))
}

// PlainTextToHTML escapes s and wraps it in a paragraph, turning newlines
// into <br>.
func PlainTextToHTML(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	escaped := template.HTMLEscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return "<p>" + escaped + "</p>"
}

// PrepareForDisplay returns s as safe HTML for a template: plain text is
// escaped with line breaks preserved, anything with markup is sanitized.
func PrepareForDisplay(s string) template.HTML {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	if IsPlainText(s) {
		return template.HTML(PlainTextToHTML(s))
	}
	return template.HTML(Sanitize(s))
}
