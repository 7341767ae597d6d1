package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	// Check that it's initialized with spaces
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Errorf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')  // Should not panic
	s.Set(100, 0, 'A') // Should not panic
	s.Set(0, -1, 'A')  // Should not panic
	s.Set(0, 100, 'A') // Should not panic

	// Out of bounds get should return space
	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenColoredCells(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(2, 3, '█', ColorBlue)

	cell := s.GetCell(2, 3)
	if cell.Rune != '█' || cell.Color != ColorBlue {
		t.Errorf("GetCell(2, 3) = %+v, expected blue '█'", cell)
	}

	// Plain Set uses the default color
	s.Set(2, 3, '#')
	if s.GetCell(2, 3).Color != ColorDefault {
		t.Error("Set should reset the cell color to default")
	}

	// Out of bounds returns a default cell
	if s.GetCell(-1, -1) != (Cell{Rune: ' ', Color: ColorDefault}) {
		t.Error("Out of bounds GetCell should return a default space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)

	// Fill with colored characters
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			s.SetColored(x, y, 'X', ColorRed)
		}
	}

	s.Clear()

	// Should all be default spaces now
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if s.GetCell(x, y) != (Cell{Rune: ' ', Color: ColorDefault}) {
				t.Errorf("After Clear, expected default space at (%d, %d)", x, y)
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)

	s.DrawText(2, 1, "hello")

	for i, r := range "hello" {
		if s.Get(2+i, 1) != r {
			t.Errorf("DrawText: expected %q at (%d, 1), got %q", r, 2+i, s.Get(2+i, 1))
		}
	}

	// Clipped text should not panic
	s.DrawText(18, 0, "overflow")
	if s.Get(19, 0) != 'v' {
		t.Errorf("Clipped text: expected 'v' at (19, 0), got %q", s.Get(19, 0))
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(10, 10)

	s.DrawRect(NewRect(2, 2, 3, 2), '█', ColorRed)

	for y := 2; y < 4; y++ {
		for x := 2; x < 5; x++ {
			cell := s.GetCell(x, y)
			if cell.Rune != '█' || cell.Color != ColorRed {
				t.Errorf("DrawRect: expected red '█' at (%d, %d), got %+v", x, y, cell)
			}
		}
	}

	// Outside the rect stays empty
	if s.Get(5, 2) != ' ' {
		t.Error("DrawRect should not spill outside its bounds")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.Set(3, 3, 'X')

	s.Resize(20, 20)

	if s.Width() != 20 || s.Height() != 20 {
		t.Errorf("After resize, size = %dx%d, expected 20x20", s.Width(), s.Height())
	}
	if s.Get(3, 3) != 'X' {
		t.Error("Resize should preserve existing content")
	}

	// Shrinking clips content
	s.Resize(2, 2)
	if s.Get(3, 3) != ' ' {
		t.Error("Out of bounds after shrink should read as space")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.Set(0, 0, 'a')
	s.Set(2, 1, 'b')

	str := s.String()
	lines := strings.Split(str, "\n")

	if len(lines) != 2 {
		t.Fatalf("String() should have 2 lines, got %d", len(lines))
	}
	if lines[0] != "a  " {
		t.Errorf("Line 0 = %q, expected \"a  \"", lines[0])
	}
	if lines[1] != "  b" {
		t.Errorf("Line 1 = %q, expected \"  b\"", lines[1])
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 1, "row")

	if s.Row(1) != "row  " {
		t.Errorf("Row(1) = %q, expected \"row  \"", s.Row(1))
	}
	if s.Row(-1) != "     " {
		t.Error("Out of bounds Row should return spaces")
	}
}
