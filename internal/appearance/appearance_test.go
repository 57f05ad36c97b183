package appearance

import (
	"context"
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		style    string
		expected Appearance
	}{
		{"Dark\n", Dark},
		{"NSAppearanceNameDarkAqua", Dark},
		{"", Light},
		{"Aqua", Light},
	}
	for _, tt := range tests {
		if got := Parse(tt.style); got != tt.expected {
			t.Errorf("Parse(%q) = %v, want %v", tt.style, got, tt.expected)
		}
	}
}

func TestSystemCurrent(t *testing.T) {
	dark := System{Read: func(context.Context) (string, error) { return "Dark", nil }}
	if dark.Current() != Dark {
		t.Error("expected Dark")
	}

	// `defaults read` exits non-zero when the key is absent (light mode).
	missing := System{Read: func(context.Context) (string, error) { return "", errors.New("exit status 1") }}
	if missing.Current() != Light {
		t.Error("expected Light on read failure")
	}
}

func TestStatic(t *testing.T) {
	if Static(Dark).Current() != Dark {
		t.Error("Static(Dark) did not report Dark")
	}
}
