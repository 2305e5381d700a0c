package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// names are never cut shorter than this, whatever the terminal width
const cmdDisplayMin = 32

// render size in kilobytes to a string, in MiB or human-readable
func kiloBytesToString(value float32, humanReadable bool) string {
	if humanReadable {
		if value < 0 {
			return "-" + humanize.IBytes(uint64(-value*1024))
		}
		return humanize.IBytes(uint64(value * 1024))
	}
	return fmt.Sprintf("%.1f", value/1024)
}

// if output is to a terminal, get its width
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width, _, err = term.GetSize(int(os.Stdin.Fd()))
		if err != nil {
			width = 80
		}
	}
	return width
}

// displayName shortens a name to at most width runes. Kernel-style names
// such as "[kworker/0:1] ..." are cut right after the closing bracket.
func displayName(name string, width int) string {
	if utf8.RuneCountInString(name) <= width {
		return name
	}
	if strings.HasPrefix(name, "[") {
		if i := strings.IndexByte(name, ']'); i >= 0 {
			return name[:i+1]
		}
	}
	return string([]rune(name)[:width])
}

type renderOptions struct {
	width         int
	wide          bool
	humanReadable bool
	quiet         bool
	heap          bool
}

// render writes the report as a borderless table, heaviest commands last
func render(w io.Writer, rep Report, opts renderOptions) {
	rows := make([][]string, 0, len(rep.Records))
	otherWidth := 0
	for _, r := range rep.Records {
		swap := ""
		if r.Swap > 0 {
			swap = kiloBytesToString(r.Swap, opts.humanReadable)
		}
		row := []string{
			kiloBytesToString(r.Pss, opts.humanReadable),
			kiloBytesToString(r.Shared, opts.humanReadable),
		}
		if opts.heap {
			row = append(row, kiloBytesToString(r.Heap, opts.humanReadable))
		}
		row = append(row, swap)
		width := 0
		for _, col := range row {
			width += max(len(col), 10) + 1
		}
		otherWidth = max(otherWidth, width)
		rows = append(rows, row)
	}

	cmdWidth := max(opts.width-otherWidth, cmdDisplayMin)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SuppressTrailingSpaces()

	numCols := 4
	if opts.heap {
		numCols = 5
	}
	configs := make([]table.ColumnConfig, 0, numCols)
	for i := 1; i < numCols; i++ {
		configs = append(configs, table.ColumnConfig{Number: i, Align: text.AlignRight, AlignFooter: text.AlignRight, AlignHeader: text.AlignRight})
	}
	configs = append(configs, table.ColumnConfig{Number: numCols, Align: text.AlignLeft, AlignFooter: text.AlignLeft, AlignHeader: text.AlignLeft})
	t.SetColumnConfigs(configs)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateFooter = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateRows = false
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault

	if !opts.quiet {
		header := table.Row{"MiB RAM", "SHARED"}
		if opts.heap {
			header = append(header, "HEAP")
		}
		t.AppendHeader(append(header, "SWAPPED", "PROCESS (COUNT)"))
	}

	for i, r := range rep.Records {
		name := r.Name
		if !opts.wide {
			name = displayName(name, cmdWidth)
		}
		row := make(table.Row, 0, numCols)
		for _, col := range rows[i] {
			row = append(row, col)
		}
		t.AppendRow(append(row, fmt.Sprintf("%s (%d)", name, r.Count)))
	}

	if !opts.quiet {
		footer := table.Row{kiloBytesToString(rep.TotalPss, opts.humanReadable), ""}
		if opts.heap {
			footer = append(footer, "")
		}
		t.AppendFooter(append(footer, kiloBytesToString(rep.TotalSwap, opts.humanReadable), "TOTAL USED BY PROCESSES"))
	}

	t.Render()
}

// writeYAML writes the report for consumption by other tools
func writeYAML(w io.Writer, rep Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return err
	}
	return enc.Close()
}
