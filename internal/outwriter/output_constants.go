package outwriter

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/quarkw/constfit/core/constants"
	"github.com/quarkw/constfit/internal/contract"
	"github.com/quarkw/constfit/schema"
)

// PrintConstants outputs the built-in constant table, dispatching on the
// configured output format. Values are truncated to the configured
// precision for display; evaluation always uses the full table entries.
func PrintConstants(cfg *contract.Config) error {
	applyColorPolicy(cfg)
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, constants.All())
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, writeConstantsCSV, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeConstantsTable(w, cfg)
		}, "Wrote table")
	}
}

func writeConstantsTable(w io.Writer, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Name", "Value", "Aliases", "Description"})

	var data [][]string
	for _, c := range constants.All() {
		data = append(data, []string{
			c.Name,
			displayValue(c.Value, cfg.PrecisionDigits),
			strings.Join(c.Aliases, ", "),
			c.Description,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeConstantsCSV(w io.Writer) error {
	header := []string{"name", "value", "aliases", "description"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, c := range constants.All() {
			rec := []string{c.Name, c.Value, strings.Join(c.Aliases, "|"), c.Description}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// displayValue truncates a full-width decimal literal to roughly the
// configured number of significant digits for table display.
func displayValue(value string, digits int) string {
	width := digits + 2 // sign-free values, room for the leading digit and dot
	if len(value) <= width {
		return value
	}
	return value[:width]
}
