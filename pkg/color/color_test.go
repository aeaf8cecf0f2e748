package color_test

import (
	"testing"

	"tim/pkg/color"
)

func TestColorize(t *testing.T) {
	defer color.EnableColor(color.IsColorEnabled())

	color.EnableColor(true)
	if got := color.GreenText("ok"); got != color.Green+"ok"+color.Reset {
		t.Errorf("expected green escape codes, got %q", got)
	}

	color.EnableColor(false)
	if got := color.GreenText("ok"); got != "ok" {
		t.Errorf("expected plain text with color disabled, got %q", got)
	}
}
