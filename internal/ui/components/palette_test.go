package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestParseCommand(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in, name, arg string
	}{
		{in: "", name: "", arg: ""},
		{in: "extract", name: "extract", arg: ""},
		{in: "  ask  what is  this? ", name: "ask", arg: "what is  this?"},
		{in: "select /tmp/My Docs/a.pdf", name: "select", arg: "/tmp/My Docs/a.pdf"},
	}
	for _, tc := range cases {
		name, arg := ParseCommand(tc.in)
		if name != tc.name || arg != tc.arg {
			t.Fatalf("ParseCommand(%q) = (%q, %q), want (%q, %q)", tc.in, name, arg, tc.name, tc.arg)
		}
	}
}

func TestSuggestFiltersByCommandWord(t *testing.T) {
	t.Parallel()
	got := Suggest("ex", 5)
	if len(got) != 2 || got[0] != "extract" {
		t.Fatalf("unexpected suggestions: %v", got)
	}
	if got := Suggest("", 3); len(got) != 3 {
		t.Fatalf("expected limit to apply, got %v", got)
	}
}

func TestPaletteSubmitAndHistory(t *testing.T) {
	t.Parallel()
	p := NewPalette()
	p.Open()
	p.input.SetValue("  extract ")
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.Visible() || cmd == nil {
		t.Fatalf("enter should close the palette and emit a command")
	}
	if msg, ok := cmd().(PaletteSubmitMsg); !ok || msg.Input != "extract" {
		t.Fatalf("unexpected submit message: %#v", cmd())
	}

	p.Open()
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	if p.input.Value() != "extract" {
		t.Fatalf("up should recall the last command, got %q", p.input.Value())
	}
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	if p.input.Value() != "" {
		t.Fatalf("down past the newest entry should clear input, got %q", p.input.Value())
	}
	p, cmd = p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.Visible() {
		t.Fatalf("esc should close the palette")
	}
	if _, ok := cmd().(PaletteCancelMsg); !ok {
		t.Fatalf("esc should emit PaletteCancelMsg")
	}
}
