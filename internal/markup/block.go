// Package markup turns product body HTML into an ordered list of paragraph blocks.
package markup

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Block is one paragraph of the document, optionally led by an emphasized span.
type Block struct {
	// Text is the full text of the paragraph, lead-in included.
	Text string
	// Lead is the text of the first <strong> or <b> inside the paragraph.
	Lead string
	// Rest is the paragraph text with the lead-in element removed.
	Rest    string
	HasLead bool
}

// Label returns the normalized lead-in text, or "" for plain blocks.
func (b Block) Label() string {
	if !b.HasLead {
		return ""
	}

	return NormalizeLabel(b.Lead)
}

// Parse returns the <p> blocks of markup in document order.
// Empty markup yields no blocks.
func Parse(markup string) ([]Block, error) {
	if strings.TrimSpace(markup) == "" {
		return nil, nil
	}

	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse markup: %w", err)
	}

	var blocks []Block

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.P {
			blocks = append(blocks, newBlock(n))
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return blocks, nil
}

// Blocks is Parse for callers that treat unreadable markup as an empty document.
func Blocks(markup string) []Block {
	blocks, err := Parse(markup)
	if err != nil {
		return nil
	}

	return blocks
}

func newBlock(p *html.Node) Block {
	b := Block{Text: textOf(p, nil)}

	lead := findEmphasis(p)
	if lead == nil {
		b.Rest = b.Text

		return b
	}

	b.HasLead = true
	b.Lead = textOf(lead, nil)
	b.Rest = textOf(p, lead)

	return b
}

// findEmphasis returns the first <strong> or <b> descendant of n in document order.
func findEmphasis(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == atom.Strong || c.DataAtom == atom.B) {
			return c
		}

		if found := findEmphasis(c); found != nil {
			return found
		}
	}

	return nil
}

// textOf concatenates the text nodes under n, leaving out the subtree rooted at skip.
func textOf(n, skip *html.Node) string {
	var sb strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n == skip {
			return
		}

		if n.Type == html.TextNode {
			sb.WriteString(n.Data)

			return
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return sb.String()
}
