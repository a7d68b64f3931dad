// Package markdown renders post content to HTML.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// md is the shared Goldmark instance. GFM enables tables, strikethrough,
// task lists and autolinks.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Linkify,
	),
)

// Render converts markdown source to HTML. On a rendering error the raw
// source is returned unchanged so a bad document never breaks a response.
func Render(content string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		return content
	}
	return buf.String()
}
