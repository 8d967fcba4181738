// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/pdiddy/eml-to-pdf/pkg/types"
)

// emailCSS styles the composed document for browser rendering. The @page
// rule controls the PDF page size.
const emailCSS = `
@page {
    size: letter;
    margin: 0.75in;
}

body {
    font-family: Helvetica, Arial, sans-serif;
    font-size: 11pt;
    line-height: 1.5;
    color: #333;
}

.email-header {
    border-bottom: 2px solid #ccc;
    padding-bottom: 15px;
    margin-bottom: 20px;
}

.email-header table {
    width: 100%;
    border-collapse: collapse;
}

.email-header td {
    padding: 3px 0;
    vertical-align: top;
}

.email-header .label {
    font-weight: bold;
    width: 60px;
    color: #555;
}

.email-header .value {
    word-break: break-word;
}

.email-body {
    margin-top: 20px;
}

img {
    max-width: 100%;
    height: auto;
}

a {
    color: #0066cc;
}

pre, code {
    font-family: Courier, monospace;
    background-color: #f5f5f5;
    padding: 2px 4px;
}

blockquote {
    border-left: 3px solid #ccc;
    margin-left: 0;
    padding-left: 15px;
    color: #666;
}

table {
    border-collapse: collapse;
    max-width: 100%;
}

td, th {
    border: 1px solid #ddd;
    padding: 8px;
}

.attachments-section {
    margin-top: 30px;
    padding-top: 15px;
    border-top: 1px solid #ccc;
}

.att-size {
    color: #888;
    font-size: 0.9em;
}

.att-type {
    color: #666;
    font-size: 0.9em;
}
`

// BuildHTML composes a complete, self-contained HTML document: header
// table, body, attachment listing, and embedded CSS sized for the
// configured page format.
func BuildHTML(doc *Document) string {
	css := emailCSS
	if doc.Settings.PageSize == types.PageA4 {
		css = strings.Replace(css, "size: letter;", "size: A4;", 1)
	}
	if doc.Settings.FontFamily != "" {
		css = strings.Replace(css,
			"font-family: Helvetica, Arial, sans-serif;",
			fmt.Sprintf("font-family: %s, Arial, sans-serif;", doc.Settings.FontFamily), 1)
	}
	if doc.Settings.FontSize > 0 {
		css = strings.Replace(css,
			"font-size: 11pt;",
			fmt.Sprintf("font-size: %gpt;", doc.Settings.FontSize), 1)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(doc.Meta.Subject))
	fmt.Fprintf(&b, "<style>%s</style>\n</head>\n<body>\n", css)

	b.WriteString("<div class=\"email-header\">\n<table>\n")
	for _, f := range metadataFields(doc.Meta, doc.Settings) {
		fmt.Fprintf(&b, "<tr><td class=\"label\">%s:</td><td class=\"value\">%s</td></tr>\n",
			f.label, html.EscapeString(f.value))
	}
	b.WriteString("</table>\n</div>\n")

	body := doc.BodyHTML
	if body == "" {
		// Plain-text source: escape and preserve line breaks.
		body = strings.ReplaceAll(html.EscapeString(doc.BodyText), "\n", "<br/>\n")
	}
	fmt.Fprintf(&b, "<div class=\"email-body\">\n%s\n</div>\n", body)

	if len(doc.Attachments) > 0 {
		b.WriteString("<div class=\"attachments-section\">\n<h3>Attachments</h3>\n<ul>\n")
		for _, att := range doc.Attachments {
			fmt.Fprintf(&b, "<li>%s <span class=\"att-size\">(%s)</span> <span class=\"att-type\">[%s]</span></li>\n",
				html.EscapeString(att.Name), FormatSize(att.Size), html.EscapeString(att.ContentType))
		}
		b.WriteString("</ul>\n</div>\n")
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}
