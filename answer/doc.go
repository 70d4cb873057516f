// Package answer provides retrieval-augmented question answering over a
// user's authorized documents.
//
// The Answerer resolves the user's team scope, gathers every authorized
// document as context, and asks the language model to answer strictly from
// that context. Its failure mode is always a degraded answer: a model
// error produces a fixed apologetic fallback, and an empty corpus skips
// the model call entirely.
package answer
