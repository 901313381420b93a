// Package memory is the in-process analytics store. It holds ingested
// metric records in a mutex-guarded slice and computes every aggregation at
// query time, which is plenty for the record volumes one deployment
// produces between restarts.
package memory
