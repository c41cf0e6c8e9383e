// Package exporter writes the prepared daily summary table to report files
// (CSV and JSON) for offline inspection.
package exporter
