// Package report turns a completed outbreak into summary statistics, a
// text report, a per-day CSV table and a PNG chart of the active case
// series.
package report
