// Package analytics defines the metrics sink the enrichment pipeline writes
// to and the query service behind the analytics API.
//
// Records are append-only facts keyed by nothing: the pipeline fans each
// enriched event out into one sentiment record, one language record and one
// record per key phrase, and queries aggregate over whatever has been
// ingested. The Sink and Querier interfaces keep the backing store
// swappable; the memory subpackage provides the in-process default.
package analytics
