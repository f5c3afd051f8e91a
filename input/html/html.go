package html

import (
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/pentype/core"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Text extracts the text of an HTML document as paragraphs separated by
// newlines. If selector is not empty, only the text of elements matching the
// CSS selector is extracted, in document order.
func Text(r io.Reader, selector string) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", core.WrapError(err, core.EINVALID, "cannot parse HTML input")
	}
	var roots []*html.Node
	if selector != "" {
		sel, err := cascadia.Compile(selector)
		if err != nil {
			return "", core.WrapError(err, core.EINVALID, "illegal selector %q", selector)
		}
		if roots = sel.MatchAll(doc); len(roots) == 0 {
			return "", core.Error(core.EMISSING, "no element matches %q", selector)
		}
		tracer().Debugf("selector %q matches %d elements", selector, len(roots))
	} else if body := findBody(doc); body != nil {
		roots = []*html.Node{body}
	} else {
		roots = []*html.Node{doc}
	}
	c := &collector{}
	for _, n := range roots {
		c.breakParagraph()
		c.collect(n)
	}
	c.breakParagraph()
	tracer().Infof("extracted %d paragraphs from HTML", len(c.paragraphs))
	return strings.Join(c.paragraphs, "\n"), nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if b := findBody(ch); b != nil {
			return b
		}
	}
	return nil
}

// collector accumulates paragraphs of text.
type collector struct {
	paragraphs []string
	current    strings.Builder
	pre        int // nesting depth of <pre>
}

var skipped = map[atom.Atom]bool{
	atom.Head: true, atom.Script: true, atom.Style: true, atom.Noscript: true,
	atom.Template: true, atom.Title: true,
}

var blocks = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Dd: true, atom.Div: true, atom.Dl: true, atom.Dt: true, atom.Figcaption: true,
	atom.Figure: true, atom.Footer: true, atom.H1: true, atom.H2: true, atom.H3: true,
	atom.H4: true, atom.H5: true, atom.H6: true, atom.Header: true, atom.Hr: true,
	atom.Li: true, atom.Main: true, atom.Nav: true, atom.Ol: true, atom.P: true,
	atom.Pre: true, atom.Section: true, atom.Table: true, atom.Td: true, atom.Th: true,
	atom.Tr: true, atom.Ul: true,
}

func (c *collector) collect(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		c.text(n.Data)
		return
	case html.ElementNode:
		if skipped[n.DataAtom] {
			return
		}
		if n.DataAtom == atom.Br {
			c.breakParagraph()
			return
		}
	case html.CommentNode, html.DoctypeNode:
		return
	}
	block := n.Type == html.ElementNode && blocks[n.DataAtom]
	if block {
		c.breakParagraph()
	}
	if n.DataAtom == atom.Pre {
		c.pre++
		defer func() { c.pre-- }()
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.collect(ch)
	}
	if block {
		c.breakParagraph()
	}
}

func (c *collector) text(s string) {
	if c.pre > 0 {
		lines := strings.Split(s, "\n")
		for i, line := range lines {
			if i > 0 {
				c.breakParagraph()
			}
			c.current.WriteString(line)
		}
		return
	}
	c.current.WriteString(s)
}

// breakParagraph ends the current paragraph, collapsing white space.
// Empty paragraphs are dropped.
func (c *collector) breakParagraph() {
	p := strings.Join(strings.Fields(c.current.String()), " ")
	c.current.Reset()
	if p != "" {
		c.paragraphs = append(c.paragraphs, p)
	}
}
