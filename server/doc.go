// Package server exposes the HTTP API: POST /ask for dialog turns,
// POST /enrich to trigger an enrichment run, GET /analytics for the named
// reports, plus /healthz and /metrics. Handlers translate domain errors to
// status codes and never leak internal failure details to clients.
package server
