// Package telemetry provides structured logging and Prometheus metrics for
// the dataset cache: component child loggers built on zerolog, and counters
// and histograms for table copies and reachability checks.
package telemetry
