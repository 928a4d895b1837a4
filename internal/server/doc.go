// Package server exposes the self-check battery and its Prometheus metrics
// over HTTP for long-running deployments.
//
// Endpoints:
//
//	GET /healthz   liveness probe
//	GET /metrics   Prometheus text exposition
//	GET /check     runs the battery; query parameters samples, seed, oracle
package server
