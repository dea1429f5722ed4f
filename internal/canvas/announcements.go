// SPDX-License-Identifier: MPL-2.0

package canvas

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// markdown converts announcement and assignment bodies to the HTML Canvas
// stores. GFM covers the tables and strikethrough instructors actually use.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// MarkdownToHTML renders a Markdown body as HTML. Conversion into an
// in-memory buffer cannot fail, so malformed input degrades to goldmark's
// literal rendering rather than an error.
func MarkdownToHTML(md string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return md
	}
	return buf.String()
}

// PostAnnouncement posts a course announcement. The body is Markdown and is
// converted to HTML before posting.
func (c *Client) PostAnnouncement(ctx context.Context, courseID int64, title, markdownBody string) error {
	form := url.Values{}
	form.Set("title", title)
	form.Set("message", MarkdownToHTML(markdownBody))
	form.Set("is_announcement", "true")
	form.Set("published", "true")

	if err := c.postForm(ctx, c.courseURL(courseID, "discussion_topics"), form, nil); err != nil {
		return fmt.Errorf("posting announcement %q: %w", title, err)
	}
	return nil
}
