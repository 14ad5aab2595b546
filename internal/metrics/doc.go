// Package metrics records render run and stage metrics.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so callers never need nil checks. The PrometheusRecorder
// collects into its own registry, which the CLI exports as a node_exporter
// textfile after every run:
//
//	rec := metrics.NewPrometheusRecorder(nil)
//	renderer := vitepress.New(opts, store, vitepress.WithRecorder(rec))
//	...
//	_ = rec.WriteTextfile("/var/lib/node_exporter/vitedoc.prom")
package metrics
