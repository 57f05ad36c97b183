package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestRenderOverlayCentersBox(t *testing.T) {
	screen := strings.Repeat(strings.Repeat(".", 20)+"\n", 9) + strings.Repeat(".", 20)
	out := renderOverlay(screen, "[box]\n[box]", 20, 10)

	rows := strings.Split(ansi.Strip(out), "\n")
	if len(rows) != 10 {
		t.Fatalf("rows = %d, want 10", len(rows))
	}
	for i, want := range []string{"", "", "", "", ".......[box]........", ".......[box]........"} {
		if want == "" {
			continue
		}
		if rows[i] != want {
			t.Errorf("row %d = %q, want %q", i, rows[i], want)
		}
	}
	if rows[0] != strings.Repeat(".", 20) {
		t.Errorf("row 0 changed: %q", rows[0])
	}
}

func TestSplicePastEnd(t *testing.T) {
	got := ansi.Strip(splice("abc", "XY", 2))
	if got != "abXY" {
		t.Errorf("splice = %q, want %q", got, "abXY")
	}
}
