// Package sanitize is the entry point for all untrusted user text.  Every function here is total:
// it returns a string for any input and never panics.
package sanitize

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"

	"github.com/nexo-textboard/nexo/pkg/markdown"
	"github.com/nexo-textboard/nexo/pkg/markup"
)

// lastResort is used only if the plain text pipeline itself fails.
var lastResort = bluemonday.StrictPolicy()

// Plain removes all markup from text.  Use it for identifiers, credentials, roles, ban reasons
// and settings.
func Plain(text string) string {
	text = validUTF8(text)
	out, err := apply(text, markup.PlainTextPolicy())
	if err != nil {
		logFallback("plain", err)
		return lastResort.Sanitize(text)
	}
	return out
}

// Rich keeps b, i, u, br and anchors with a safe href, and removes all other markup.  Use it for
// short free text such as about-me.
func Rich(text string) string {
	text = validUTF8(text)
	out, err := apply(text, markup.RichTextPolicy())
	if err != nil {
		logFallback("rich", err)
		return Plain(text)
	}
	return out
}

// Markdown runs text through Rich and then renders markdown with the default renderer.  Use it for
// post bodies and replies.
func Markdown(text string) string {
	return MarkdownWith(markdown.Default(), text)
}

// MarkdownWith is Markdown using renderer r.
func MarkdownWith(r *markdown.Renderer, text string) string {
	out, err := render(r, Rich(text))
	if err != nil {
		logFallback("markdown", err)
		return Plain(text)
	}
	return out
}

// ForMode dispatches to Plain or Rich.
func ForMode(m markup.Mode, text string) string {
	if m == markup.RichText {
		return Rich(text)
	}
	return Plain(text)
}

// Bytes sanitizes a raw payload under m.  Invalid UTF-8 sequences are replaced, not rejected.
func Bytes(m markup.Mode, payload []byte) string {
	return ForMode(m, string(payload))
}

func apply(text string, p *markup.Policy) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v policy panic: %v", p, r)
		}
	}()
	return markup.Sanitize(text, p), nil
}

func render(r *markdown.Renderer, text string) (out string, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("markdown panic: %v", v)
		}
	}()
	return r.Render(text)
}

func validUTF8(s string) string {
	return strings.ToValidUTF8(s, "\uFFFD")
}

func logFallback(stage string, err error) {
	log.Warn().Str("module", "sanitize").Str("stage", stage).Err(err).
		Msg("Sanitization failed, falling back to plain text")
}
