// Package markup turns exercise instructions into terminal output. The
// service ships instructions as HTML fragments; they are converted to
// Markdown and rendered with glamour.
package markup

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	multiNewlinePattern = regexp.MustCompile(`\n{3,}`)
	multiSpacePattern   = regexp.MustCompile(`[ \t]{2,}`)
)

// ToMarkdown converts an instructions fragment to Markdown. Text inside
// <pre> keeps its whitespace.
func ToMarkdown(fragment string) (string, error) {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return "", err
	}

	c := &converter{}
	c.walk(doc, 0)
	return c.finish(), nil
}

type converter struct {
	sb      strings.Builder
	pre     []string // verbatim blocks, substituted after cleanup
	inPre   bool
	preBuf  strings.Builder
	lists   []string // "ul" or "ol"
	ordinal []int
}

func (c *converter) walk(n *html.Node, depth int) {
	if depth > 50 {
		return
	}

	if c.inPre {
		c.walkPre(n)
		return
	}

	switch n.Type {
	case html.TextNode:
		text := strings.Join(strings.Fields(n.Data), " ")
		if text != "" {
			c.sb.WriteString(text)
			c.sb.WriteString(" ")
		}
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "noscript", "iframe", "svg":
			return
		case "h1", "h2", "h3", "h4", "h5", "h6":
			level := int(n.Data[1] - '0')
			c.sb.WriteString("\n\n" + strings.Repeat("#", level) + " ")
		case "p", "div", "section":
			c.sb.WriteString("\n\n")
		case "br":
			c.sb.WriteString("\n")
		case "ul", "ol":
			c.lists = append(c.lists, n.Data)
			c.ordinal = append(c.ordinal, 0)
			c.sb.WriteString("\n")
		case "li":
			c.listItem()
		case "code":
			c.sb.WriteString("`")
		case "pre":
			c.inPre = true
			c.preBuf.Reset()
			for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
				c.walkPre(ch)
			}
			c.inPre = false
			c.pre = append(c.pre, strings.Trim(c.preBuf.String(), "\n"))
			fmt.Fprintf(&c.sb, "\n\n\x00%d\x00\n\n", len(c.pre)-1)
			return
		case "strong", "b":
			c.sb.WriteString("**")
		case "em", "i":
			c.sb.WriteString("*")
		case "a":
			if href := getAttr(n, "href"); href != "" && !strings.HasPrefix(href, "#") {
				c.sb.WriteString("[")
			}
		case "img":
			if alt := getAttr(n, "alt"); alt != "" {
				fmt.Fprintf(&c.sb, "[Image: %s]", alt)
			}
			return
		}
	}

	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.walk(ch, depth+1)
	}

	if n.Type != html.ElementNode {
		return
	}
	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		c.sb.WriteString("\n\n")
	case "ul", "ol":
		c.lists = c.lists[:len(c.lists)-1]
		c.ordinal = c.ordinal[:len(c.ordinal)-1]
		c.sb.WriteString("\n\n")
	case "code":
		c.trimTrailingSpace()
		c.sb.WriteString("` ")
	case "strong", "b":
		c.trimTrailingSpace()
		c.sb.WriteString("** ")
	case "em", "i":
		c.trimTrailingSpace()
		c.sb.WriteString("* ")
	case "a":
		if href := getAttr(n, "href"); href != "" && !strings.HasPrefix(href, "#") {
			c.trimTrailingSpace()
			fmt.Fprintf(&c.sb, "](%s) ", href)
		}
	}
}

func (c *converter) listItem() {
	depth := len(c.lists)
	if depth == 0 {
		c.sb.WriteString("\n- ")
		return
	}
	indent := strings.Repeat("  ", depth-1)
	if c.lists[depth-1] == "ol" {
		c.ordinal[depth-1]++
		fmt.Fprintf(&c.sb, "\n%s%d. ", indent, c.ordinal[depth-1])
		return
	}
	c.sb.WriteString("\n" + indent + "- ")
}

func (c *converter) walkPre(n *html.Node) {
	if n.Type == html.TextNode {
		c.preBuf.WriteString(n.Data)
		return
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.walkPre(ch)
	}
}

// trimTrailingSpace drops the separator written after the last text node so
// closing emphasis markers hug their content.
func (c *converter) trimTrailingSpace() {
	s := c.sb.String()
	if trimmed := strings.TrimRight(s, " "); len(trimmed) != len(s) {
		c.sb.Reset()
		c.sb.WriteString(trimmed)
	}
}

func (c *converter) finish() string {
	s := cleanMarkdown(c.sb.String())
	for i, block := range c.pre {
		s = strings.Replace(s, fmt.Sprintf("\x00%d\x00", i), "```\n"+block+"\n```", 1)
	}
	return s
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// cleanMarkdown removes excessive whitespace. List indentation survives.
func cleanMarkdown(s string) string {
	s = multiNewlinePattern.ReplaceAllString(s, "\n\n")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		body := multiSpacePattern.ReplaceAllString(strings.TrimSpace(line), " ")
		if body == "" {
			lines[i] = ""
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " "))
		lines[i] = strings.Repeat(" ", indent) + body
	}
	s = strings.Join(lines, "\n")
	s = multiNewlinePattern.ReplaceAllString(s, "\n\n")

	return strings.TrimSpace(s)
}
