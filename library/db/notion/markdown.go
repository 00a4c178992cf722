package notion

import (
	"context"
	"fmt"
	"strings"

	"github.com/Laisky/errors/v2"
)

// MarkdownResult holds a page's converted content. Parent is the top-level
// section; consumers concatenate only this section.
type MarkdownResult struct {
	Parent string
}

// PageToMarkdown fetches a page's block tree and converts it to a flat
// markdown string. Unknown block types are skipped, nested children are
// indented under their parent.
func (c *Client) PageToMarkdown(ctx context.Context, pageID string) (MarkdownResult, error) {
	var b strings.Builder
	if err := c.renderChildren(ctx, pageID, 0, &b); err != nil {
		return MarkdownResult{}, errors.Wrapf(err, "convert page `%s`", pageID)
	}

	return MarkdownResult{Parent: strings.TrimRight(b.String(), "\n")}, nil
}

func (c *Client) renderChildren(ctx context.Context,
	blockID string, depth int, b *strings.Builder) error {
	blocks, err := c.BlockChildren(ctx, blockID)
	if err != nil {
		return err
	}

	numbered := 0
	for _, block := range blocks {
		if block.Type == "numbered_list_item" {
			numbered++
		} else {
			numbered = 0
		}

		line, known := renderBlock(block, numbered)
		if !known {
			continue
		}

		indent := strings.Repeat("  ", depth)
		for _, l := range strings.Split(line, "\n") {
			b.WriteString(indent)
			b.WriteString(l)
			b.WriteString("\n")
		}
		b.WriteString("\n")

		if block.HasChildren {
			if err := c.renderChildren(ctx, block.ID, depth+1, b); err != nil {
				return err
			}
		}
	}

	return nil
}

// renderBlock converts one block to its markdown line(s). The second
// return is false for unsupported block types. A block whose type tag has
// no matching payload is skipped like an unknown type, never dereferenced.
func renderBlock(block Block, numbered int) (string, bool) {
	switch {
	case block.Type == "paragraph" && block.Paragraph != nil:
		return RenderRichText(block.Paragraph.RichText), true
	case block.Type == "heading_1" && block.Heading1 != nil:
		return "# " + RenderRichText(block.Heading1.RichText), true
	case block.Type == "heading_2" && block.Heading2 != nil:
		return "## " + RenderRichText(block.Heading2.RichText), true
	case block.Type == "heading_3" && block.Heading3 != nil:
		return "### " + RenderRichText(block.Heading3.RichText), true
	case block.Type == "bulleted_list_item" && block.BulletedListItem != nil:
		return "- " + RenderRichText(block.BulletedListItem.RichText), true
	case block.Type == "numbered_list_item" && block.NumberedListItem != nil:
		return fmt.Sprintf("%d. %s", numbered,
			RenderRichText(block.NumberedListItem.RichText)), true
	case block.Type == "quote" && block.Quote != nil:
		return "> " + RenderRichText(block.Quote.RichText), true
	case block.Type == "to_do" && block.ToDo != nil:
		mark := " "
		if block.ToDo.Checked {
			mark = "x"
		}
		return fmt.Sprintf("- [%s] %s", mark, RenderRichText(block.ToDo.RichText)), true
	case block.Type == "code" && block.Code != nil:
		return fmt.Sprintf("```%s\n%s\n```", block.Code.Language,
			JoinPlainText(block.Code.RichText)), true
	case block.Type == "divider":
		return "---", true
	case block.Type == "image" && block.Image != nil:
		return fmt.Sprintf("![%s](%s)",
			JoinPlainText(block.Image.Caption), block.Image.URLString()), true
	case block.Type == "bookmark" && block.Bookmark != nil:
		caption := JoinPlainText(block.Bookmark.Caption)
		if caption == "" {
			caption = block.Bookmark.URL
		}
		return fmt.Sprintf("[%s](%s)", caption, block.Bookmark.URL), true
	default:
		return "", false
	}
}

// RenderRichText converts rich text runs to inline markdown, applying
// annotations and links per run.
func RenderRichText(runs []RichText) string {
	var b strings.Builder
	for _, r := range runs {
		text := r.PlainText
		switch {
		case r.Annotations.Code:
			text = "`" + text + "`"
		default:
			if r.Annotations.Bold {
				text = "**" + text + "**"
			}
			if r.Annotations.Italic {
				text = "_" + text + "_"
			}
			if r.Annotations.Strikethrough {
				text = "~~" + text + "~~"
			}
		}

		if r.Href != "" {
			text = fmt.Sprintf("[%s](%s)", text, r.Href)
		}

		b.WriteString(text)
	}

	return b.String()
}
