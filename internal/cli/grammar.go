package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/FlyingWolFox/cfg-string-generator/pkg/grammar"
)

// grammarCommand creates the grammar command.
func (c *CLI) grammarCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Inspect and create grammar documents",
	}

	cmd.AddCommand(c.grammarShowCommand())
	cmd.AddCommand(c.grammarInitCommand())

	return cmd
}

// grammarShowCommand creates the "grammar show" subcommand.
func (c *CLI) grammarShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [grammar-file]",
		Short: "Print the rules of a grammar document",
		Args:  cobra.MaximumNArgs(1),

		ValidArgsFunction: completeGrammarFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			g := grammar.Demo()
			name := "sample grammar"
			if len(args) == 1 {
				var err error
				if g, err = grammar.Load(args[0]); err != nil {
					return err
				}
				name = args[0]
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, StyleTitle.Render(name))
			fmt.Fprintln(out, rulesTable(g))
			fmt.Fprintln(out, StyleDim.Render(grammarSummary(g)))
			return nil
		},
	}
}

// grammarInitCommand creates the "grammar init" subcommand.
func (c *CLI) grammarInitCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the sample grammar as a TOML document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return grammar.Encode(cmd.OutOrStdout(), grammar.Demo(), grammar.FormatTOML)
			}
			if err := writeGrammar(output, grammar.Demo()); err != nil {
				return err
			}
			printSuccess("Wrote sample grammar")
			printFile(output)
			printNextStep("Enumerate it", "cfggen generate "+output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.toml or .json; default stdout)")

	return cmd
}

// writeGrammar writes g to path in the format its extension names.
// An existing file is never overwritten.
func writeGrammar(path string, g grammar.Grammar) error {
	format, err := grammar.FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := grammar.Encode(f, g, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// rulesTable renders one row per nonterminal with its productions in order.
func rulesTable(g grammar.Grammar) string {
	rows := make([][]string, 0, len(g))
	for _, sym := range g.Symbols() {
		alts := make([]string, len(g[sym]))
		for i, alt := range g[sym] {
			alts[i] = displayString(alt)
		}
		rows = append(rows, []string{string(rune(sym)), strings.Join(alts, " | ")})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Symbol", "Productions").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0 && rows[row][0] == string(rune(grammar.Start)):
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	return t.Render()
}
