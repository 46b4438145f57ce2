package cmd

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// newTable starts a rounded table writing to w. Columns listed in numeric
// (1-based) are right aligned; headers and footers keep their case.
func newTable(w io.Writer, header table.Row, numeric ...int) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault
	tw.AppendHeader(header)

	configs := make([]table.ColumnConfig, 0, len(numeric))
	for _, n := range numeric {
		configs = append(configs, table.ColumnConfig{Number: n, Align: text.AlignRight, AlignFooter: text.AlignRight})
	}
	tw.SetColumnConfigs(configs)
	return tw
}
