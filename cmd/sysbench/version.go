package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/sysbench/internal/cpu"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and host information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "sysbench %s\n", version)
			_, _ = fmt.Fprintf(out, "  go:      %s\n", runtime.Version())
			_, _ = fmt.Fprintf(out, "  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			_, _ = fmt.Fprintf(out, "  cores:   %d\n", cpu.LogicalCores())
		},
	}
}
