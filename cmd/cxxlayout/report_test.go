package main

import (
	"strconv"
	"strings"
	"testing"
	"unsafe"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func findSection(t *testing.T, sections []section, title string) section {
	t.Helper()
	for _, s := range sections {
		if s.title == title {
			return s
		}
	}
	t.Fatalf("section %q missing", title)
	return section{}
}

func TestBuildReport_Variants(t *testing.T) {
	word := uint64(unsafe.Sizeof(uintptr(0)))
	tests := []struct {
		name    string
		opts    reportOptions
		title   string
		field   string
		offset  uint64
		missing string
	}{
		{"current counting", reportOptions{variant: "current", alloc: "counting"}, "std::vector (current)", "val", word, "std::vector (msvc2012)"},
		{"msvc2012 counting", reportOptions{variant: "msvc2012", alloc: "counting"}, "std::vector (msvc2012)", "alloc", 3 * word, "std::vector (current)"},
		{"current system", reportOptions{variant: "all", alloc: "system"}, "std::list (current)", "val", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sections, err := buildReport(tt.opts)
			if err != nil {
				t.Fatalf("buildReport: %v", err)
			}
			s := findSection(t, sections, tt.title)
			var found bool
			for _, row := range s.rows {
				if row[0] == tt.field {
					found = true
					if want := strconv.FormatUint(tt.offset, 10); row[2] != want {
						t.Errorf("%s offset = %s, want %s", tt.field, row[2], want)
					}
				}
			}
			if !found {
				t.Errorf("field %q missing from %v", tt.field, s.rows)
			}
			if tt.missing != "" {
				for _, s := range sections {
					if s.title == tt.missing {
						t.Errorf("section %q should not be present", tt.missing)
					}
				}
			}
		})
	}
}

func TestBuildReport_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts reportOptions
	}{
		{"variant", reportOptions{variant: "msvc2010", alloc: "system"}},
		{"allocator", reportOptions{variant: "all", alloc: "arena"}},
		{"element", reportOptions{variant: "all", alloc: "system", elems: []string{"int32", "string"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := buildReport(tt.opts); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestElemSection(t *testing.T) {
	s, err := elemSection([]string{"int64", " [3]byte", "[2]uint64", "struct{}"})
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		{"int64", "8", "8", "0x8", "16"},
		{"[3]byte", "3", "1", "0x3", "16"},
		{"[2]uint64", "16", "8", "0xffffffffffffeffc", "16"},
		{"struct{}", "1", "1", "0x1", "16"},
	}
	if unsafe.Sizeof(uintptr(0)) != 8 {
		t.Skip("tags below are for 64-bit targets")
	}
	for i, row := range s.rows {
		for j := range row {
			if row[j] != want[i][j] {
				t.Errorf("row %d col %d = %s, want %s", i, j, row[j], want[i][j])
			}
		}
	}
}

func TestRender(t *testing.T) {
	sections, err := buildReport(reportOptions{variant: "current", alloc: "system"})
	if err != nil {
		t.Fatal(err)
	}
	out := render(sections, false)
	for _, want := range []string{"vector record", "First", "allocator proxy", "AlignedAlloc"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestInteractiveModel_Navigation(t *testing.T) {
	sections, err := buildReport(reportOptions{variant: "all", alloc: "system"})
	if err != nil {
		t.Fatal(err)
	}
	m := newInteractiveModel(sections)
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.selected != 1 {
		t.Errorf("selected = %d after right, want 1", m.selected)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.selected != len(sections)-1 {
		t.Errorf("selected = %d after wrapping left, want %d", m.selected, len(sections)-1)
	}
	if !strings.Contains(m.View(), sections[m.selected].title) {
		t.Error("view does not show the selected section")
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Error("q did not quit")
	}
}

func TestInteractiveModel_TabsFollowSelection(t *testing.T) {
	sections, err := buildReport(reportOptions{variant: "all", alloc: "counting"})
	if err != nil {
		t.Fatal(err)
	}
	m := newInteractiveModel(sections)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	for i := range sections {
		m.selected = i
		m.load()
		tabs := m.tabs(80)
		if !strings.Contains(tabs, sections[i].title) {
			t.Errorf("section %d: tab row %q misses %q", i, tabs, sections[i].title)
		}
		if w := lipgloss.Width(tabs); w > 80 {
			t.Errorf("section %d: tab row width = %d, want <= 80", i, w)
		}
	}
}
