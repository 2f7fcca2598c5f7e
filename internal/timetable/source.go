package timetable

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// maxSourceBytes caps how much of a file or page is read
const maxSourceBytes = 5 * 1024 * 1024

// IsURL checks if a string looks like a URL
func IsURL(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// ReadSource returns the schedule text held in a file or web page. HTML is
// reduced to its visible text; PDFs and images are refused.
func ReadSource(ctx context.Context, source string) (string, error) {
	if IsURL(source) {
		return fetch(ctx, source)
	}

	switch strings.ToLower(filepath.Ext(source)) {
	case ".pdf":
		return "", ErrPDFSource
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp", ".heic":
		return "", ErrImageSource
	}

	f, err := os.Open(source)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", source, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSourceBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", source, err)
	}

	switch strings.ToLower(filepath.Ext(source)) {
	case ".html", ".htm":
		return TextFromHTML(string(data))
	}
	return string(data), nil
}

func fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "jess/1.0 (timetable import)")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "html") {
		return TextFromHTML(string(body))
	}
	return string(body), nil
}

// TextFromHTML keeps the visible text of a page, one line per block or
// table row, with table cells separated by " | ".
func TextFromHTML(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	var sb strings.Builder
	var extract func(*html.Node)

	// Tags to skip (non-content)
	skipTags := map[string]bool{
		"script": true, "style": true, "noscript": true,
		"iframe": true, "head": true, "nav": true,
	}

	extract = func(n *html.Node) {
		if n.Type == html.ElementNode && skipTags[n.Data] {
			return
		}

		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				sb.WriteString(text)
				sb.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}

		if n.Type == html.ElementNode {
			switch n.Data {
			case "td", "th":
				sb.WriteString("| ")
			case "p", "div", "tr", "li", "br", "h1", "h2", "h3", "h4", "h5", "h6", "table":
				sb.WriteString("\n")
			}
		}
	}

	extract(doc)

	var lines []string
	for _, line := range strings.Split(sb.String(), "\n") {
		line = strings.Join(strings.Fields(line), " ")
		line = strings.TrimSuffix(line, " |")
		line = strings.TrimSuffix(line, "|")
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) == 0 {
		return "", ErrEmptySource
	}
	return strings.Join(lines, "\n"), nil
}
