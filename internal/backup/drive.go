package backup

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var driveFilePattern = regexp.MustCompile(`drive\.google\.com/file/d/([^/?#]+)`)

// driveFileID extracts the file identifier from a Google Drive share link.
func driveFileID(rawURL string) (string, bool) {
	if m := driveFilePattern.FindStringSubmatch(rawURL); m != nil {
		return m[1], true
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || !strings.Contains(parsed.Host, "drive.google.com") {
		return "", false
	}
	if id := parsed.Query().Get("id"); id != "" {
		return id, true
	}
	return "", false
}

// driveDirectDownloadURL rewrites a Drive share link into the uc endpoint
// that serves file bytes directly.
func driveDirectDownloadURL(rawURL string) (string, bool) {
	id, ok := driveFileID(rawURL)
	if !ok {
		return "", false
	}
	return "https://drive.google.com/uc?export=download&id=" + url.QueryEscape(id), true
}

// isDriveConfirmPage detects the HTML interstitial Drive serves for files
// too large to virus-scan.
func isDriveConfirmPage(contentType string, body []byte) bool {
	if !strings.Contains(contentType, "text/html") {
		return false
	}
	return bytes.Contains(body, []byte("download-form")) ||
		bytes.Contains(body, []byte("uc-download-link"))
}

// parseDriveConfirmPage extracts the confirmed download URL from the
// interstitial. Newer pages embed a form with hidden inputs, older ones a
// plain anchor.
func parseDriveConfirmPage(body []byte, base *url.URL) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse confirmation page: %w", err)
	}

	if form := doc.Find("form#download-form").First(); form.Length() > 0 {
		action, _ := form.Attr("action")
		if action == "" {
			return "", fmt.Errorf("confirmation form has no action")
		}
		actionURL, err := resolveURL(base, action)
		if err != nil {
			return "", err
		}
		query := actionURL.Query()
		form.Find("input[type=hidden]").Each(func(_ int, input *goquery.Selection) {
			name, _ := input.Attr("name")
			value, _ := input.Attr("value")
			if name != "" {
				query.Set(name, value)
			}
		})
		actionURL.RawQuery = query.Encode()
		return actionURL.String(), nil
	}

	if link := doc.Find("a#uc-download-link").First(); link.Length() > 0 {
		href, _ := link.Attr("href")
		if href == "" {
			return "", fmt.Errorf("confirmation link has no href")
		}
		resolved, err := resolveURL(base, href)
		if err != nil {
			return "", err
		}
		return resolved.String(), nil
	}

	return "", fmt.Errorf("no download form found on confirmation page")
}

func resolveURL(base *url.URL, ref string) (*url.URL, error) {
	parsed, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("parse download url %q: %w", ref, err)
	}
	if base != nil {
		return base.ResolveReference(parsed), nil
	}
	return parsed, nil
}
