package markdown_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jhillyerd/goldiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexo-textboard/nexo/pkg/markdown"
)

func render(t *testing.T, r *markdown.Renderer, src string) string {
	t.Helper()
	got, err := r.Render(src)
	require.NoError(t, err)
	return got
}

func TestRenderFormatting(t *testing.T) {
	testCases := []struct {
		name, input string
		want        []string
	}{
		{"emphasis", "**bold** and *italic*", []string{"<strong>bold</strong>", "<em>italic</em>"}},
		{"underscore emphasis", "__bold__ and _italic_", []string{"<strong>bold</strong>", "<em>italic</em>"}},
		{"headers", "# Title\n\n###### Small", []string{"<h1>Title</h1>", "<h6>Small</h6>"}},
		{"paragraphs", "one\n\ntwo", []string{"<p>one</p>", "<p>two</p>"}},
		{"bullet list", "- one\n- two", []string{"<ul>", "<li>one</li>", "<li>two</li>", "</ul>"}},
		{"numbered list", "1. first\n2. second", []string{"<ol>", "<li>first</li>", "</ol>"}},
		{"inline code", "run `make test`", []string{"<code>make test</code>"}},
		{"fenced code", "```go\nx := 1\n```", []string{"<pre><code>x := 1"}},
		{"link", "[ok](https://example.com)", []string{`<a href="https://example.com">ok</a>`}},
		{"relative link", "[post](/posts/1)", []string{`<a href="/posts/1">post</a>`}},
		{"mailto link", "[mail](mailto:admin@example.com)", []string{`<a href="mailto:admin@example.com">mail</a>`}},
		{"rich tags survive", `<b>x</b> and <u>y</u>`, []string{"<b>x</b>", "<u>y</u>"}},
		{
			"rich anchor survives",
			`see <a href="https://example.com">here</a>`,
			[]string{`<a href="https://example.com">here</a>`},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := render(t, markdown.Default(), tc.input)
			for _, w := range tc.want {
				assert.Contains(t, got, w)
			}
		})
	}
}

func TestRenderGolden(t *testing.T) {
	for _, name := range []string{"formatting", "links", "code"} {
		t.Run(name, func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join("testdata", name+".md"))
			require.NoError(t, err)
			got := render(t, markdown.Default(), string(src))
			goldiff.File(t, []byte(got), "testdata", name+".golden")
		})
	}
}

func TestRenderStripsAttributes(t *testing.T) {
	got := render(t, markdown.Default(), "```go\nx := 1\n```\n\n[t](https://example.com \"title\")\n\n3. three")
	assert.NotContains(t, got, "class=")
	assert.NotContains(t, got, "title=")
	assert.NotContains(t, got, "start=")
}

func TestRenderUnsafeLinks(t *testing.T) {
	testCases := []struct {
		name, input, text string
	}{
		{"javascript", "[click](javascript:alert(1))", "click"},
		{"mixed case", "[click](JavaScript:alert(1))", "click"},
		{"entity colon", "[click](javascript&#58;alert(1))", "click"},
		{"named entity colon", "[click](javascript&colon;alert(1))", "click"},
		{"vbscript", "[click](vbscript:msgbox(1))", "click"},
		{"data", "[click](data:text/html;base64,PHNjcmlwdD4=)", "click"},
		{"reference", "[click][x]\n\n[x]: javascript:alert(1)", "click"},
		{"angle destination", "[click](<javascript:alert(1)>)", "click"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := render(t, markdown.Default(), tc.input)
			assert.NotContains(t, got, "javascript")
			assert.NotContains(t, got, "vbscript")
			assert.NotContains(t, got, "data:")
			assert.NotContains(t, got, "<a")
			assert.Contains(t, got, tc.text)
		})
	}
}

func TestRenderRawHTMLIsFiltered(t *testing.T) {
	got := render(t, markdown.Default(),
		"<script>alert(1)</script><img src=x onerror=alert(1)>\n\n<a href=\"javascript:alert(2)\">x</a>")
	assert.NotContains(t, got, "<script")
	assert.NotContains(t, got, "<img")
	assert.NotContains(t, got, "onerror")
	assert.NotContains(t, got, "javascript:")
}

func TestRenderImagesBecomeAltText(t *testing.T) {
	got := render(t, markdown.Default(), "look: ![a cat](https://example.com/cat.png)")
	assert.NotContains(t, got, "<img")
	assert.NotContains(t, got, "cat.png")
	assert.Contains(t, got, "a cat")

	got = render(t, markdown.Default(), "[![logo](https://example.com/l.png)](https://example.com)")
	assert.NotContains(t, got, "<img")
	assert.Contains(t, got, `<a href="https://example.com">logo</a>`)
}

func TestRenderOutsideVocabulary(t *testing.T) {
	got := render(t, markdown.Default(), "> quoted\n\n---\n\nend")
	assert.NotContains(t, got, "<blockquote")
	assert.NotContains(t, got, "<hr")
	assert.Contains(t, got, "quoted")
	assert.Contains(t, got, "end")
}

func TestRenderOptions(t *testing.T) {
	plain := markdown.New(markdown.Options{})

	got := render(t, markdown.Default(), "line one\nline two")
	assert.Contains(t, got, "<br>")
	got = render(t, plain, "line one\nline two")
	assert.NotContains(t, got, "<br>")

	got = render(t, markdown.Default(), "see https://example.com/page now")
	assert.Contains(t, got, `<a href="https://example.com/page">https://example.com/page</a>`)
	got = render(t, plain, "see https://example.com/page now")
	assert.NotContains(t, got, "<a")
	assert.Contains(t, got, "https://example.com/page")
}

func TestRenderLinkifyRejectsOtherSchemes(t *testing.T) {
	got := render(t, markdown.Default(), "get ftp://files.example.com/x")
	assert.NotContains(t, got, "<a")
	assert.Contains(t, got, "ftp://files.example.com/x")

	got = render(t, markdown.Default(), "mail admin@example.com")
	assert.Contains(t, got, `href="mailto:admin@example.com"`)
}

func TestRenderPackageDefault(t *testing.T) {
	got, err := markdown.Render("*x*")
	require.NoError(t, err)
	assert.Contains(t, got, "<em>x</em>")
}

func TestRenderConcurrent(t *testing.T) {
	r := markdown.Default()
	want := render(t, r, "# hi\n\n[x](https://example.com) [y](javascript:z)")
	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = r.Render("# hi\n\n[x](https://example.com) [y](javascript:z)")
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
