// Package richtext renders product description blocks to sanitized HTML and
// derives plain-text summaries for meta tags.
package richtext

import (
	"bytes"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"finitefield.org/catalog-web/internal/catalog"
)

// MetaDescriptionLimit is the length cap for meta descriptions, in characters.
const MetaDescriptionLimit = 160

// Renderer converts description blocks to HTML. It is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *Renderer {
	return &Renderer{
		md:     goldmark.New(),
		policy: bluemonday.UGCPolicy(),
	}
}

// Markdown flattens blocks into a markdown document.
func Markdown(blocks []catalog.Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		switch b.Type {
		case "heading":
			text := b.Text()
			if text == "" {
				continue
			}
			level := b.Level
			if level < 1 {
				level = 2
			}
			if level > 6 {
				level = 6
			}
			parts = append(parts, strings.Repeat("#", level)+" "+text)
		case "quote":
			if text := b.Text(); text != "" {
				parts = append(parts, "> "+text)
			}
		case "list":
			items := make([]string, 0, len(b.Children))
			for _, c := range b.Children {
				if t := strings.TrimSpace(c.Text); t != "" {
					items = append(items, "- "+t)
				}
			}
			if len(items) > 0 {
				parts = append(parts, strings.Join(items, "\n"))
			}
		case "code":
			if text := b.Text(); text != "" {
				parts = append(parts, "```\n"+text+"\n```")
			}
		default:
			if text := b.Text(); text != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, "\n\n")
}

// HTML renders blocks as sanitized HTML. Rendering errors yield "".
func (r *Renderer) HTML(blocks []catalog.Block) template.HTML {
	src := Markdown(blocks)
	if src == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return ""
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes()))
}

// Summary returns the description as plain text capped at limit characters.
func (r *Renderer) Summary(blocks []catalog.Block, limit int) string {
	return Truncate(PlainText(string(r.HTML(blocks))), limit)
}

// PlainText strips markup and collapses whitespace.
func PlainText(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if isBlock(atom.Lookup(name)) {
				b.WriteByte(' ')
			}
		}
	}
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Br, atom.Li, atom.Ul, atom.Ol, atom.Div, atom.Blockquote, atom.Pre,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

// Truncate cuts s to at most limit runes without adding an ellipsis.
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:limit]))
}
