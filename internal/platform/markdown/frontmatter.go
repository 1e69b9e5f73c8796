// Package markdown reads and writes the markdown files physiq owns:
// per-analysis reports and the training journal kept by export plugins.
// Files carry optional YAML frontmatter and machine-managed blocks
// inside otherwise free-form content.
package markdown

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---\n"

// SplitFrontmatter separates a leading YAML frontmatter block from the
// body. Content that does not open with a fence comes back unchanged
// with empty metadata.
func SplitFrontmatter(content string) (map[string]any, string, error) {
	rest, found := strings.CutPrefix(content, fence)
	if !found {
		return map[string]any{}, content, nil
	}
	raw, body, closed := strings.Cut(rest, "\n"+fence)
	if !closed {
		return nil, "", fmt.Errorf("frontmatter opened but never closed")
	}
	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(raw), &meta); err != nil {
		return nil, "", fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	return meta, body, nil
}

// RenderFrontmatter prepends meta as a fenced YAML block. A blank line
// is inserted before the body unless it already starts with one.
func RenderFrontmatter(meta map[string]any, body string) (string, error) {
	raw, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	var b strings.Builder
	b.WriteString(fence)
	b.Write(raw)
	b.WriteString(fence)
	if !strings.HasPrefix(body, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(body)
	return b.String(), nil
}
