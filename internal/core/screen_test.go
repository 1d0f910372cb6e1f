package core

import (
	"strings"
	"testing"
)

// rows renders the screen and splits it for row-by-row comparison.
func rows(s *Screen) []string {
	return strings.Split(s.String(), "\n")
}

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(4, 2)

	if s.Width() != 4 || s.Height() != 2 {
		t.Fatalf("size = %dx%d, expected 4x2", s.Width(), s.Height())
	}
	if got := s.String(); got != "    \n    " {
		t.Errorf("String() = %q, expected two blank rows", got)
	}
}

func TestNewScreenNegativeSize(t *testing.T) {
	s := NewScreen(-3, 2)

	if s.Width() != 0 || s.Height() != 2 {
		t.Errorf("size = %dx%d, expected 0x2", s.Width(), s.Height())
	}
	s.Set(0, 0, '#')
	if s.Get(0, 0) != ' ' {
		t.Error("zero-width screen should ignore writes")
	}
}

func TestScreenSetOutOfBounds(t *testing.T) {
	s := NewScreen(3, 3)

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {100, 100}} {
		s.Set(p[0], p[1], '#')
		if got := s.Get(p[0], p[1]); got != ' ' {
			t.Errorf("Get(%d, %d) = %q, expected space", p[0], p[1], got)
		}
	}
	if got := s.String(); got != "   \n   \n   " {
		t.Errorf("out of bounds writes leaked into the buffer: %q", got)
	}
}

func TestScreenFillAndClear(t *testing.T) {
	s := NewScreen(3, 2)
	s.SetColor(1, 1, '?', ColorYellow)

	s.Fill('#')
	if got := s.String(); got != "###\n###" {
		t.Errorf("after Fill String() = %q", got)
	}
	if s.GetCell(1, 1).Color != ColorDefault {
		t.Error("Fill should reset colors")
	}

	s.Clear()
	if got := s.String(); got != "   \n   " {
		t.Errorf("after Clear String() = %q", got)
	}
}

func TestScreenDrawText(t *testing.T) {
	tests := []struct {
		name     string
		x        int
		text     string
		expected string
	}{
		{"inside", 1, "1-1", " 1-1    "},
		{"clipped right", 6, "Score", "      Sc"},
		{"clipped left", -2, "Lives", "ves     "},
		{"runes", 0, "▓?▓", "▓?▓     "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScreen(8, 1)
			s.DrawText(tc.x, 0, tc.text)
			if got := s.Row(0); got != tc.expected {
				t.Errorf("Row(0) = %q, expected %q", got, tc.expected)
			}
		})
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "PAUSED")

	if got := s.Row(0); got != "  PAUSED   " {
		t.Errorf("Row(0) = %q, expected %q", got, "  PAUSED   ")
	}

	s = NewScreen(7, 1)
	s.DrawTextCentered(0, "⚑ ⚑")
	if got := s.Row(0); got != "  ⚑ ⚑  " {
		t.Errorf("centering should count runes, got %q", got)
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(5, 4)
	s.DrawRectColor(NewRect(1, 1, 3, 2), '▓', ColorOrange)

	expected := []string{
		"     ",
		" ▓▓▓ ",
		" ▓▓▓ ",
		"     ",
	}
	for y, row := range rows(s) {
		if row != expected[y] {
			t.Errorf("row %d = %q, expected %q", y, row, expected[y])
		}
	}
	if s.GetCell(2, 2).Color != ColorOrange {
		t.Error("DrawRectColor should color the filled cells")
	}

	s.DrawRect(NewRect(3, 2, 10, 10), '#')
	if got := s.Row(3); got != "   ##" {
		t.Errorf("clipped DrawRect row 3 = %q", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBox(NewRect(0, 0, 6, 4))

	expected := []string{
		"┌────┐",
		"│    │",
		"│    │",
		"└────┘",
	}
	for y, row := range rows(s) {
		if row != expected[y] {
			t.Errorf("row %d = %q, expected %q", y, row, expected[y])
		}
	}
}

func TestScreenResizeKeepsTopLeft(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawText(0, 0, "abcd")
	s.DrawText(0, 1, "efgh")
	s.SetColor(1, 0, 'B', ColorRed)

	s.Resize(6, 2)
	if got := s.String(); got != "aBcd  \nefgh  " {
		t.Errorf("grown String() = %q", got)
	}
	if s.GetCell(1, 0).Color != ColorRed {
		t.Error("Resize should keep cell colors")
	}

	s.Resize(2, 1)
	if got := s.String(); got != "aB" {
		t.Errorf("shrunk String() = %q", got)
	}
}

func TestScreenRowOutOfRange(t *testing.T) {
	s := NewScreen(3, 1)
	s.DrawText(0, 0, "abc")

	if got := s.Row(-1); got != "   " {
		t.Errorf("Row(-1) = %q, expected blank", got)
	}
	if got := s.Row(1); got != "   " {
		t.Errorf("Row(1) = %q, expected blank", got)
	}
}

func TestScreenColorCells(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawTextColor(1, 1, "▓?▓", ColorOrange)

	cell := s.GetCell(2, 1)
	if cell.Rune != '?' || cell.Color != ColorOrange {
		t.Errorf("GetCell(2, 1) = %+v, expected '?' in orange", cell)
	}
	if s.GetCell(0, 1).Color != ColorDefault {
		t.Error("untouched cell should keep the default color")
	}
	if s.GetCell(-1, 0) != (Cell{Rune: ' '}) {
		t.Error("out of bounds GetCell should return a blank cell")
	}
}
