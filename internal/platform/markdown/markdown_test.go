package markdown_test

import (
	"strings"
	"testing"

	"physiq/internal/platform/markdown"
)

func TestSplitFrontmatterWithoutFence(t *testing.T) {
	t.Parallel()
	meta, body, err := markdown.SplitFrontmatter("just a body\n")
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(meta) != 0 {
		t.Fatalf("expected empty meta, got %v", meta)
	}
	if body != "just a body\n" {
		t.Fatalf("body was altered: %q", body)
	}
}

func TestSplitFrontmatterParsesMetaAndBody(t *testing.T) {
	t.Parallel()
	content := "---\naccount: lee@example.com\nscore: 72.5\n---\n\n# Report\n"
	meta, body, err := markdown.SplitFrontmatter(content)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if meta["account"] != "lee@example.com" {
		t.Fatalf("expected account in meta, got %v", meta)
	}
	if !strings.Contains(body, "# Report") {
		t.Fatalf("body lost content: %q", body)
	}
}

func TestSplitFrontmatterUnclosedFence(t *testing.T) {
	t.Parallel()
	if _, _, err := markdown.SplitFrontmatter("---\naccount: x\nno closing fence"); err == nil {
		t.Fatalf("expected error for unclosed frontmatter")
	}
}

func TestRenderFrontmatterRoundTrips(t *testing.T) {
	t.Parallel()
	rendered, err := markdown.RenderFrontmatter(map[string]any{"account": "lee@example.com"}, "# Journal\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	meta, body, err := markdown.SplitFrontmatter(rendered)
	if err != nil {
		t.Fatalf("split rendered: %v", err)
	}
	if meta["account"] != "lee@example.com" {
		t.Fatalf("meta lost on round trip: %v", meta)
	}
	if !strings.Contains(body, "# Journal") {
		t.Fatalf("body lost on round trip: %q", body)
	}
}

func TestReplaceManagedBlockAppendsWhenMissing(t *testing.T) {
	t.Parallel()
	got := markdown.ReplaceManagedBlock("# Journal\n", "<!-- a:start -->", "<!-- a:end -->", "entry one")
	if !strings.Contains(got, "# Journal") {
		t.Fatalf("existing body lost: %q", got)
	}
	if !strings.Contains(got, "<!-- a:start -->\nentry one\n<!-- a:end -->") {
		t.Fatalf("block not appended: %q", got)
	}
}

func TestReplaceManagedBlockIsIdempotent(t *testing.T) {
	t.Parallel()
	body := markdown.ReplaceManagedBlock("", "<!-- a:start -->", "<!-- a:end -->", "entry one")
	body = markdown.ReplaceManagedBlock(body, "<!-- a:start -->", "<!-- a:end -->", "entry two")

	if strings.Contains(body, "entry one") {
		t.Fatalf("stale content survived: %q", body)
	}
	if strings.Count(body, "<!-- a:start -->") != 1 {
		t.Fatalf("expected exactly one block, got %q", body)
	}
	if !strings.Contains(body, "entry two") {
		t.Fatalf("fresh content missing: %q", body)
	}
}

func TestReplaceManagedBlockLeavesOtherBlocksAlone(t *testing.T) {
	t.Parallel()
	body := markdown.ReplaceManagedBlock("", "<!-- a:start -->", "<!-- a:end -->", "alpha")
	body = markdown.ReplaceManagedBlock(body, "<!-- b:start -->", "<!-- b:end -->", "beta")
	body = markdown.ReplaceManagedBlock(body, "<!-- a:start -->", "<!-- a:end -->", "alpha two")

	if !strings.Contains(body, "beta") {
		t.Fatalf("unrelated block lost: %q", body)
	}
	if !strings.Contains(body, "alpha two") || strings.Contains(body, ">\nalpha\n<") {
		t.Fatalf("targeted block not replaced: %q", body)
	}
}
