package handlers

import (
	"html/template"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var answerPolicy = newAnswerPolicy()

func newAnswerPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(false)
	policy.RequireNoReferrerOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}

// renderAnswer turns a markdown FAQ answer into sanitized HTML.
func renderAnswer(source string) template.HTML {
	source = strings.TrimSpace(source)
	if source == "" {
		return ""
	}

	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.SkipHTML})
	rendered := markdown.ToHTML([]byte(source), p, renderer)

	return template.HTML(strings.TrimSpace(string(answerPolicy.SanitizeBytes(rendered))))
}
