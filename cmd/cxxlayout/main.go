package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/cxxstl"
)

func main() {
	var (
		variant     = flag.String("layout", "all", "Layout variant: current, msvc2012 or all")
		allocName   = flag.String("alloc", "system", "Allocator for wrapper layouts: system or counting")
		elems       = flag.String("elem", "", "Element types to tag (comma-separated, e.g. int32,[3]byte)")
		listElems   = flag.Bool("list-elem", false, "List known element types and exit")
		plain       = flag.Bool("plain", false, "Disable styling even on a terminal")
		verbose     = flag.Bool("v", false, "Log allocator and fatal events to stderr")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			cxxstl.SetLogger(l)
			defer func() { _ = l.Sync() }()
		}
	}

	if *listElems {
		for _, name := range elemNames() {
			fmt.Println(name)
		}
		return
	}

	opts := reportOptions{variant: *variant, alloc: *allocName}
	if *elems != "" {
		opts.elems = strings.Split(*elems, ",")
	}
	sections, err := buildReport(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tty := term.IsTerminal(int(os.Stdout.Fd()))
	if *interactive {
		if !tty {
			fmt.Fprintln(os.Stderr, "Error: -i needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(sections); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Print(render(sections, tty && !*plain))
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#98FB98")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)
)

func render(sections []section, styled bool) string {
	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteByte('\n')
		}
		if styled {
			b.WriteString(titleStyle.Render(s.title) + "\n")
			b.WriteString(summaryStyle.Render(s.summary) + "\n")
		} else {
			fmt.Fprintf(&b, "%s\n%s\n", s.title, s.summary)
		}
		t := lgtable.New().
			Headers(s.header...).
			Rows(s.rows...)
		if styled {
			t = t.Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == lgtable.HeaderRow {
						return headerStyle
					}
					return cellStyle
				})
		} else {
			t = t.Border(lipgloss.ASCIIBorder()).
				StyleFunc(func(row, col int) lipgloss.Style { return cellStyle })
		}
		b.WriteString(t.String() + "\n")
	}
	return b.String()
}
