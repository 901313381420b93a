// Package openai implements the ai contracts over OpenAI-compatible chat
// APIs using langchaingo.
//
// The Generator maps directly onto a chat completion. The Classifier has
// no dedicated NLP endpoint to call, so every batch operation is a single
// JSON-mode completion: the batch is rendered as a JSON document list, the
// model returns one result object per document, and results are correlated
// back by document ID. Malformed model output is repaired and re-requested
// a bounded number of times before the batch is failed.
package openai
