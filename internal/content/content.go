// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package content selects and prepares an email's body for rendering:
// picking the best representation, resolving cid: image references, and
// producing sanitized HTML or flowable text.
package content

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jaytaylor/html2text"
	"github.com/microcosm-cc/bluemonday"

	"github.com/pdiddy/eml-to-pdf/pkg/types"
)

// ErrNoBody reports an email with neither a text nor an HTML body.
var ErrNoBody = errors.New("no text or HTML body found")

// SelectBody returns the best body representation: HTML preferred, plain
// text fallback.
func SelectBody(email *types.ParsedEmail) (body string, isHTML bool, err error) {
	if strings.TrimSpace(email.BodyHTML) != "" {
		return email.BodyHTML, true, nil
	}
	if strings.TrimSpace(email.BodyText) != "" {
		return email.BodyText, false, nil
	}
	return "", false, ErrNoBody
}

// DataURI encodes an inline image as a base64 data URI.
func DataURI(img types.InlineImage) string {
	return "data:" + img.ContentType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

// ResolveCIDs replaces cid: references in img tags with base64 data URIs so
// the rendered document is self-contained. Unresolved references get an
// empty src and a placeholder alt text. The returned fragment is the body
// content only; the renderer wraps it in a full document.
func ResolveCIDs(html string, images []types.InlineImage) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML body: %w", err)
	}

	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		src, ok := sel.Attr("src")
		if !ok || !strings.HasPrefix(strings.ToLower(src), "cid:") {
			return
		}
		cid := strings.Trim(src[len("cid:"):], `"' `)
		if img, found := lookupCID(images, cid); found {
			sel.SetAttr("src", DataURI(img))
			return
		}
		sel.SetAttr("src", "")
		sel.SetAttr("alt", "[image not found]")
	})

	out, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("serializing HTML body: %w", err)
	}
	return out, nil
}

// lookupCID matches a cid: reference against the available images: exact
// match first, then substring match in either direction. Mailers disagree
// about whether the reference carries the full content-ID.
func lookupCID(images []types.InlineImage, cid string) (types.InlineImage, bool) {
	for _, img := range images {
		if img.CID == cid {
			return img, true
		}
	}
	for _, img := range images {
		if strings.Contains(img.CID, cid) || strings.Contains(cid, img.CID) {
			return img, true
		}
	}
	return types.InlineImage{}, false
}

// sanitizePolicy keeps the markup emails actually use: UGC elements, tables,
// inline styles, and data-URI images. Scripts and event handlers are gone.
var sanitizePolicy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowImages()
	p.AllowDataURIImages()
	p.AllowTables()
	p.AllowAttrs("style").Globally()
	return p
}()

// Sanitize strips active content from an HTML body before it is handed to
// the browser renderer.
func Sanitize(html string) string {
	return sanitizePolicy.Sanitize(html)
}

// Flatten extracts readable text from an HTML body for the builtin layout.
func Flatten(html string) (string, error) {
	text, err := html2text.FromString(html, html2text.Options{PrettyTables: true})
	if err != nil {
		return "", fmt.Errorf("extracting text from HTML: %w", err)
	}
	return text, nil
}
