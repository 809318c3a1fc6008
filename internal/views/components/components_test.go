package components

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestLinkState(t *testing.T) {
	if got := linkState("menu", "menu"); got != "active" {
		t.Fatalf("expected active state when sections match, got %q", got)
	}
	if got := linkState("prep", "menu"); got != "inactive" {
		t.Fatalf("expected inactive state when sections differ, got %q", got)
	}
}

func TestStatCardRendersValues(t *testing.T) {
	var buf bytes.Buffer
	err := StatCard("Average margin", "R 84.00", "", "Across 12 dishes").Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("render stat card: %v", err)
	}
	output := buf.String()
	for _, token := range []string{"Average margin", "R 84.00", "Across 12 dishes"} {
		if !strings.Contains(output, token) {
			t.Fatalf("expected output to contain %q: %s", token, output)
		}
	}
	if strings.Contains(output, "stat-delta") {
		t.Fatalf("expected empty delta to be omitted: %s", output)
	}
}

func TestFlashEscapesAndSkipsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Flash("").Render(context.Background(), &buf); err != nil {
		t.Fatalf("render empty flash: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output for empty message, got %q", buf.String())
	}

	if err := Flash("<b>bad</b>").Render(context.Background(), &buf); err != nil {
		t.Fatalf("render flash: %v", err)
	}
	if strings.Contains(buf.String(), "<b>") {
		t.Fatalf("expected message to be escaped: %s", buf.String())
	}
}

func TestSidebarRendersActiveSection(t *testing.T) {
	var buf bytes.Buffer
	if err := AppSidebar("prep").Render(context.Background(), &buf); err != nil {
		t.Fatalf("render sidebar: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `href="/app/prep/sheet" hx-boost="true" data-state="active"`) {
		t.Fatalf("expected prep link to be active: %s", out)
	}
	if strings.Count(out, `data-state="active"`) != 1 {
		t.Fatalf("expected exactly one active link: %s", out)
	}
}
