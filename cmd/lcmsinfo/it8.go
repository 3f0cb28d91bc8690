package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jrshoare/golcms"
	"github.com/spf13/cobra"
)

var it8Cmd = &cobra.Command{
	Use:   "it8 <file>",
	Short: "Print the tables of a CGATS/IT8 measurement file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := golcms.NewContext(nil)
		if err != nil {
			return err
		}
		defer ctx.Close()
		it, err := golcms.LoadIT8File(ctx, args[0])
		if err != nil {
			return fmt.Errorf("loading %s: %w", args[0], err)
		}
		return printIT8(cmd.OutOrStdout(), it)
	},
}

func init() {
	rootCmd.AddCommand(it8Cmd)
}

func printIT8(w io.Writer, it *golcms.IT8) error {
	n, err := it.TableCount()
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := it.SetTable(i); err != nil {
			return err
		}
		sheet, _ := it.SheetType()
		fmt.Fprintf(w, "table %d: %s\n", i, sheet)

		props, err := it.Properties()
		if err != nil {
			return err
		}
		for _, k := range props {
			v, err := it.Property(k)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "  %s = %s\n", k, v)
		}

		fields, err := it.DataFormat()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %s\n", strings.Join(fields, "\t"))
		sets, err := it.PropertyFloat("NUMBER_OF_SETS")
		if err != nil {
			sets = 0
		}
		for row := 0; row < int(sets); row++ {
			cells := make([]string, len(fields))
			for col := range fields {
				cells[col], _ = it.DataRowCol(row, col)
			}
			fmt.Fprintf(w, "  %s\n", strings.Join(cells, "\t"))
		}
	}
	return nil
}
