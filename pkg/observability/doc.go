/*
Package observability provides tools for monitoring the Concierge engine.

It turns engine lifecycle hooks into Prometheus metrics and structured log lines,
and owns the metrics registry exposed by the HTTP transport on /metrics.
*/
package observability
