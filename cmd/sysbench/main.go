// Command sysbench runs a suite of short synthetic workloads that measure
// CPU, memory, disk and computation speed, and scores each one.
package main

import (
	"os"
)

func main() {
	// Enable ANSI escape sequences on Windows for color and progress bar output
	enableWindowsANSI()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
