// Package enrich runs the offline analytics pass over stored dialog
// events.
//
// The pipeline scans unprocessed question and answer events, batches them
// through language detection, sentiment analysis and key phrase
// extraction, writes the annotations back onto the events and fans the
// results out into flat metric records for the analytics sink.
//
// Setting sentiment on an event is what marks it processed, so a
// completed event is never re-selected and re-running the pipeline over
// the same backlog is safe. Classifier failures degrade per batch and per
// document rather than aborting the run; only the initial store scan is
// allowed to fail the run as a whole.
package enrich
