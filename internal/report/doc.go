// Package report holds the sinks a benchmark run reports to: a console
// printer with a progress bar, summary and catalog tables, JSON export, a
// Prometheus textfile exporter and an in-memory history of past runs.
// Every sink implements bench.Reporter and Multi combines them.
package report
