package markdown

import "strings"

// ReplaceManagedBlock swaps the region between startMarker and endMarker
// for freshly generated content. When the markers are not present yet the
// block is appended, separated from the existing body by a blank line.
// Text outside the markers is never touched.
func ReplaceManagedBlock(body, startMarker, endMarker, generated string) string {
	block := startMarker + "\n" + generated + "\n" + endMarker

	if start := strings.Index(body, startMarker); start >= 0 {
		if end := strings.Index(body[start:], endMarker); end >= 0 {
			return body[:start] + block + body[start+end+len(endMarker):]
		}
	}

	if strings.TrimSpace(body) == "" {
		return block + "\n"
	}
	if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	return body + "\n" + block + "\n"
}
