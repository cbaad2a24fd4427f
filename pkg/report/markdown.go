package report

import (
	"strings"

	"github.com/russross/blackfriday/v2"
)

// FlattenMarkdown reduces markdown-flavored narrative to the plain line
// format the classifier expects: emphasis markers disappear, headings become
// upper-case colon-terminated section lines, list items become "- " bullets.
// The generation prompt asks for plain text, but responses regularly arrive
// with markdown anyway.
func FlattenMarkdown(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	parser := blackfriday.New(blackfriday.WithExtensions(blackfriday.CommonExtensions))
	root := parser.Parse([]byte(text))

	var out strings.Builder
	listDepth := 0

	root.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		switch node.Type {
		case blackfriday.Heading:
			if entering {
				heading := strings.TrimSpace(collectText(node))
				if heading != "" {
					out.WriteString(strings.ToUpper(strings.TrimSuffix(heading, ":")))
					out.WriteString(":\n\n")
				}
				return blackfriday.SkipChildren
			}
		case blackfriday.List:
			if entering {
				listDepth++
			} else {
				listDepth--
				if listDepth == 0 {
					out.WriteString("\n")
				}
			}
		case blackfriday.Item:
			if entering {
				out.WriteString("- ")
			}
		case blackfriday.Paragraph:
			if !entering {
				if listDepth > 0 {
					out.WriteString("\n")
				} else {
					out.WriteString("\n\n")
				}
			}
		case blackfriday.Text, blackfriday.Code:
			if entering {
				out.Write(node.Literal)
			}
		case blackfriday.CodeBlock:
			if entering {
				out.Write(node.Literal)
				out.WriteString("\n")
			}
		case blackfriday.Softbreak, blackfriday.Hardbreak:
			if entering {
				out.WriteString("\n")
			}
		case blackfriday.HorizontalRule:
			if !entering {
				out.WriteString("\n")
			}
		}
		return blackfriday.GoToNext
	})

	return strings.TrimSpace(out.String())
}

// collectText gathers the literal text beneath a node, used for headings
// whose children (emphasis, links) should contribute text only.
func collectText(node *blackfriday.Node) string {
	var buf strings.Builder
	node.Walk(func(child *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if entering && (child.Type == blackfriday.Text || child.Type == blackfriday.Code) {
			buf.Write(child.Literal)
		}
		return blackfriday.GoToNext
	})
	return buf.String()
}
