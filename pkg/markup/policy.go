// Package markup tokenizes untrusted text, filters its tags against an allowlist, and emits the
// surviving tokens back into a string.
package markup

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html/atom"
)

// Mode selects the policy applied to a piece of user text.
type Mode int

const (
	// PlainText permits no tags at all.
	PlainText Mode = iota
	// RichText permits a small set of inline formatting tags.
	RichText
)

func (m Mode) String() string {
	switch m {
	case PlainText:
		return "plain"
	case RichText:
		return "rich"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses the names produced by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plain":
		return PlainText, nil
	case "rich":
		return RichText, nil
	}
	return PlainText, fmt.Errorf("unknown sanitization mode %q, want plain or rich", s)
}

// Policy is an immutable tag allowlist. Each allowed tag carries the set of attributes it may
// keep.
type Policy struct {
	name string
	tags map[atom.Atom]map[atom.Atom]struct{}
}

var (
	plainTextPolicy = newPolicy("plain")
	richTextPolicy  = newPolicy("rich", atom.B, atom.I, atom.U, atom.A, atom.Br).
		withAttrs(atom.A, atom.Href)
	markdownPolicy = newPolicy("markdown",
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.P, atom.Ul, atom.Ol, atom.Li, atom.Pre, atom.Code,
		atom.Em, atom.Strong, atom.A, atom.Br,
		atom.B, atom.I, atom.U).
		withAttrs(atom.A, atom.Href)
)

// newPolicy and withAttrs are only called while building the package policies above.
func newPolicy(name string, tags ...atom.Atom) *Policy {
	p := &Policy{name: name, tags: make(map[atom.Atom]map[atom.Atom]struct{}, len(tags))}
	for _, t := range tags {
		p.tags[t] = nil
	}
	return p
}

func (p *Policy) withAttrs(tag atom.Atom, attrs ...atom.Atom) *Policy {
	set := make(map[atom.Atom]struct{}, len(attrs))
	for _, a := range attrs {
		set[a] = struct{}{}
	}
	p.tags[tag] = set
	return p
}

// PlainTextPolicy allows no tags.
func PlainTextPolicy() *Policy { return plainTextPolicy }

// RichTextPolicy allows b, i, u, br, and a with an href.
func RichTextPolicy() *Policy { return richTextPolicy }

// MarkdownPolicy is the output vocabulary of the markdown renderer: headers, paragraphs, lists,
// code, emphasis, links and line breaks, plus the rich text inline tags.
func MarkdownPolicy() *Policy { return markdownPolicy }

// PolicyFor returns the policy for m. Unknown modes get the plain text policy.
func PolicyFor(m Mode) *Policy {
	if m == RichText {
		return richTextPolicy
	}
	return plainTextPolicy
}

// AllowsTag reports whether tag may appear in output.
func (p *Policy) AllowsTag(tag atom.Atom) bool {
	if tag == 0 {
		return false
	}
	_, ok := p.tags[tag]
	return ok
}

// AllowsAttr reports whether attr may be kept on tag.
func (p *Policy) AllowsAttr(tag, attr atom.Atom) bool {
	if attr == 0 {
		return false
	}
	_, ok := p.tags[tag][attr]
	return ok
}

// Tags returns the allowed tag names, sorted.
func (p *Policy) Tags() []string {
	names := make([]string, 0, len(p.tags))
	for t := range p.tags {
		names = append(names, t.String())
	}
	sort.Strings(names)
	return names
}

// Attrs returns the attribute names allowed on tag, sorted.
func (p *Policy) Attrs(tag string) []string {
	set := p.tags[atom.Lookup([]byte(strings.ToLower(tag)))]
	names := make([]string, 0, len(set))
	for a := range set {
		names = append(names, a.String())
	}
	sort.Strings(names)
	return names
}

func (p *Policy) String() string {
	return p.name
}
