package content

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	xhtml "golang.org/x/net/html"
)

const wordsPerMinute = 200

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	articlePolicy = newArticlePolicy()
)

func newArticlePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("id").OnElements("h2", "h3", "h4")
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre", "table")
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// RenderMarkdown converts article Markdown into sanitized HTML.
func RenderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return articlePolicy.Sanitize(buf.String()), nil
}

// ReadingMinutes estimates reading time from rendered HTML. It never returns
// less than one minute.
func ReadingMinutes(renderedHTML string) int {
	words := countWords(renderedHTML)
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

func countWords(renderedHTML string) int {
	z := xhtml.NewTokenizer(strings.NewReader(renderedHTML))
	words := 0
	for {
		switch z.Next() {
		case xhtml.ErrorToken:
			return words
		case xhtml.TextToken:
			words += len(strings.Fields(string(z.Text())))
		}
	}
}
