// Package memory implements the embedding-backed event recall store of
// spec §4.10 (C10): an append-only collection of text fragments, each with
// optional metadata and an embedding vector, queryable by cosine
// similarity. internal/world opens the store and keeps it on the World
// aggregate; no other engine package reads from it.
//
// Grounded on the `ternarybob-iter` manifest, which embeds
// philippgille/chromem-go as its vector store; this package is a thin
// domain wrapper around a single chromem-go collection rather than a
// reimplementation of vector search. The embedding function itself is a
// forward-reference interface onto internal/llm's createEmbedding
// collaborator contract, the same seam pattern used by
// worldgen.LoreExpander and social.KnowledgeExpander.
package memory
