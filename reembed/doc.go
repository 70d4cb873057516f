// Package reembed regenerates embeddings for every stored document, for
// use after switching or upgrading the embedding model.
//
// Documents are streamed in batches, each batch is embedded with
// exponential-backoff retry, and the resulting vectors are normalized to
// unit length before being written back.
package reembed
