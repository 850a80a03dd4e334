// cmd/netsql/root.go
package main

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"netsql/internal/catalog"
	"netsql/internal/platform/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "netsql",
		Short: "Query network devices with a small SQL dialect",
		Long: `netsql runs the commands behind a data source on every device of a host
list, turns their output into tables and prints the joined, filtered and
projected result per host.`,
		Example:       config.Examples,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runQuery,
	}
	config.RegisterFlags(root.Flags())

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	root.AddCommand(newQueryCmd(), newSourcesCmd(), newVersionCmd())
	return root
}

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "query",
		Short:   "Run a query against one device or a host list (default command)",
		Example: config.Examples,
		Args:    cobra.NoArgs,
		RunE:    runQuery,
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func newSourcesCmd() *cobra.Command {
	d := config.DefaultConfig()
	var commandsFile, sourcesFile, templateDir string

	cmd := &cobra.Command{
		Use:   "sources",
		Short: "List the data sources a query can select from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(commandsFile, sourcesFile, templateDir)
			if err != nil {
				return err
			}

			tw := tablewriter.NewWriter(cmd.OutOrStdout())
			tw.SetHeader([]string{"Data source", "Commands", "Join on", "Report"})
			tw.SetAutoFormatHeaders(false)
			tw.SetAutoWrapText(false)
			for _, src := range cat.Sources() {
				join := "-"
				if src.JoinTables && src.Join != nil {
					join = src.Join.On
				}
				report := src.ReportName
				if !src.ProcessTables {
					report = "(raw only)"
				}
				tw.Append([]string{src.Name, strings.Join(src.Commands, "\n"), join, report})
			}
			tw.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&commandsFile, "commands-file", d.Files.Commands, "command definitions file (JSON or YAML)")
	cmd.Flags().StringVar(&sourcesFile, "sources-file", d.Files.Sources, "data source definitions file (JSON or YAML)")
	cmd.Flags().StringVar(&templateDir, "template-dir", d.Files.TemplateDir, "directory relative template paths resolve against")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "netsql %s\ncommit: %s\nbuilt:  %s\n", version, commit, date)
		},
	}
}
