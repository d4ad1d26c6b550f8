package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:          "sysbench",
		Short:        "Micro-benchmark suite for CPU, memory, disk and computation",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (YAML)")
	root.AddCommand(newRunCmd(&cfgFile))
	root.AddCommand(newListCmd())
	root.AddCommand(newVersionCmd())
	return root
}
