package service

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
)

// RenderMarkdown renders a post's markdown body to HTML for the detail
// page.
func RenderMarkdown(md []byte) string {
	htmlFlags := html.CommonFlags | html.HrefTargetBlank
	opts := html.RendererOptions{Flags: htmlFlags}
	renderer := html.NewRenderer(opts)

	return string(markdown.ToHTML(md, nil, renderer))
}
