package main

import (
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/sysbench/internal/bench"
	"github.com/utkarsh5026/sysbench/internal/report"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the workloads in execution order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return report.RenderCatalog(cmd.OutOrStdout(), bench.Catalog())
		},
	}
}
