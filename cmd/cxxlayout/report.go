package main

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/wippyai/cxxstl/alloc"
	"github.com/wippyai/cxxstl/cxxstring"
	"github.com/wippyai/cxxstl/internal/cstl"
	"github.com/wippyai/cxxstl/layout"
	"github.com/wippyai/cxxstl/list"
	"github.com/wippyai/cxxstl/semantics"
	"github.com/wippyai/cxxstl/vector"
	"github.com/wippyai/cxxstl/vector/msvc2012"
)

type reportOptions struct {
	variant string
	alloc   string
	elems   []string
}

// section is one table of the report.
type section struct {
	title   string
	summary string
	header  []string
	rows    [][]string
}

var fieldHeader = []string{"Field", "Type", "Offset", "Size"}

var elemTypes = map[string]func() *semantics.Descriptor{
	"int8":       semantics.Of[int8],
	"int16":      semantics.Of[int16],
	"int32":      semantics.Of[int32],
	"int64":      semantics.Of[int64],
	"uint8":      semantics.Of[uint8],
	"uint16":     semantics.Of[uint16],
	"uint32":     semantics.Of[uint32],
	"uint64":     semantics.Of[uint64],
	"float32":    semantics.Of[float32],
	"float64":    semantics.Of[float64],
	"complex128": semantics.Of[complex128],
	"[3]byte":    semantics.Of[[3]byte],
	"[6]uint16":  semantics.Of[[6]uint16],
	"[2]uint64":  semantics.Of[[2]uint64],
	"struct{}":   semantics.Of[struct{}],
}

func elemNames() []string {
	names := make([]string, 0, len(elemTypes))
	for name := range elemTypes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func recordSection(c *layout.Calculator, title string, t reflect.Type) section {
	info := c.Calculate(t)
	s := section{
		title:   title,
		summary: fmt.Sprintf("%s  size %d  align %d  padding %d", info.Name, info.Size, info.Align, info.Padding()),
		header:  fieldHeader,
	}
	for _, f := range info.Fields {
		s.rows = append(s.rows, []string{f.Name, f.Type, strconv.FormatUint(uint64(f.Offset), 10), strconv.FormatUint(uint64(f.Size), 10)})
	}
	return s
}

// wrapperTypes returns the wrapper types of each container for allocator A.
func wrapperTypes[A alloc.Allocator](variant string) []struct {
	title string
	t     reflect.Type
} {
	var out []struct {
		title string
		t     reflect.Type
	}
	add := func(title string, t reflect.Type) {
		out = append(out, struct {
			title string
			t     reflect.Type
		}{title, t})
	}
	if variant == "current" || variant == "all" {
		add("std::vector (current)", reflect.TypeFor[vector.Layout[A]]())
		add("std::list (current)", reflect.TypeFor[list.Layout[A]]())
		add("std::basic_string (current)", reflect.TypeFor[layout.AllocFirst[A, cxxstring.RawString]]())
	}
	if variant == "msvc2012" || variant == "all" {
		add("std::vector (msvc2012)", reflect.TypeFor[msvc2012.Layout[A]]())
	}
	return out
}

func buildReport(opts reportOptions) ([]section, error) {
	switch opts.variant {
	case "current", "msvc2012", "all":
	default:
		return nil, fmt.Errorf("unknown layout variant %q (want current, msvc2012 or all)", opts.variant)
	}

	c := layout.NewCalculator()
	sections := []section{
		recordSection(c, "vector record", reflect.TypeFor[vector.RawVec]()),
		recordSection(c, "list record", reflect.TypeFor[list.RawList]()),
		recordSection(c, "list node links", reflect.TypeFor[cstl.ListNode]()),
		recordSection(c, "string record", reflect.TypeFor[cxxstring.RawString]()),
		recordSection(c, "allocator proxy", reflect.TypeFor[cstl.Alloc]()),
	}

	var wrappers []struct {
		title string
		t     reflect.Type
	}
	switch opts.alloc {
	case "system":
		wrappers = wrapperTypes[alloc.System](opts.variant)
	case "counting":
		wrappers = wrapperTypes[*alloc.Counting[alloc.System]](opts.variant)
	default:
		return nil, fmt.Errorf("unknown allocator %q (want system or counting)", opts.alloc)
	}
	for _, w := range wrappers {
		sections = append(sections, recordSection(c, w.title, w.t))
	}

	if len(opts.elems) > 0 {
		s, err := elemSection(opts.elems)
		if err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return sections, nil
}

func elemSection(names []string) (section, error) {
	s := section{
		title:   "element types",
		summary: "type tags as passed to the native tables",
		header:  []string{"Type", "Size", "Align", "Tag", "Node value offset"},
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		of, ok := elemTypes[name]
		if !ok {
			return section{}, fmt.Errorf("unknown element type %q (known: %s)", name, strings.Join(elemNames(), ", "))
		}
		d := of()
		s.rows = append(s.rows, []string{
			name,
			strconv.FormatUint(uint64(d.Size), 10),
			strconv.FormatUint(uint64(d.Align), 10),
			fmt.Sprintf("%#x", uint64(d.Type)),
			strconv.FormatUint(uint64(cstl.ListValueOffset(d.Type)), 10),
		})
	}
	return s, nil
}
