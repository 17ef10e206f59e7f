// Package metrics observes validated integrations. The scalar metrics
// implement dynamo.Metric and summarize one run; Collector exports step
// statistics to Prometheus.
package metrics
