// Package markdown expands markdown in text that has already been through rich text sanitization.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/nexo-textboard/nexo/pkg/markup"
)

// linkGuardPriority runs the link guard after goldmark's own transformers.
const linkGuardPriority = 1000

// Options controls markdown rendering.
type Options struct {
	// HardWraps renders single newlines inside a paragraph as <br>.
	HardWraps bool
	// Linkify turns bare URLs into links.
	Linkify bool
}

// DefaultOptions suits forum posts: authors expect newlines and pasted URLs to survive.
func DefaultOptions() Options {
	return Options{HardWraps: true, Linkify: true}
}

// Renderer converts markdown to HTML restricted to markup.MarkdownPolicy.  A Renderer is immutable
// and safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *markup.Policy
	final  *bluemonday.Policy
}

var defaultRenderer = New(DefaultOptions())

// New builds a Renderer.
func New(opts Options) *Renderer {
	var exts []goldmark.Extender
	if opts.Linkify {
		exts = append(exts, extension.Linkify)
	}
	// Inline HTML in the input has already been filtered down to the rich text tags, and the
	// rendered output is filtered again below.
	rendererOpts := []renderer.Option{gmhtml.WithUnsafe()}
	if opts.HardWraps {
		rendererOpts = append(rendererOpts, gmhtml.WithHardWraps())
	}
	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(util.Prioritized(linkGuard{}, linkGuardPriority)),
		),
		goldmark.WithRendererOptions(rendererOpts...),
	)
	policy := markup.MarkdownPolicy()
	return &Renderer{md: md, policy: policy, final: policy.Bluemonday()}
}

// Default returns the Renderer built with DefaultOptions.
func Default() *Renderer {
	return defaultRenderer
}

// Render converts src to HTML.  Link destinations are checked with markup.SanitizeHref before
// rendering, and the rendered HTML is passed through markup.MarkdownPolicy and an equivalent
// bluemonday policy, so every href in the result has been checked after expansion.
func (r *Renderer) Render(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	out := markup.Sanitize(buf.String(), r.policy)
	return r.final.Sanitize(out), nil
}

// Render converts src to HTML with the default Renderer.
func Render(src string) (string, error) {
	return defaultRenderer.Render(src)
}
