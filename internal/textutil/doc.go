// Package textutil ranks catalog titles against free-text queries.
//
// Titles are folded (lowercased, diacritics stripped) and split into tokens.
// Each title becomes a term-frequency fingerprint weighted by inverse
// document frequency across the candidate set, so words shared by many
// titles ("the", a series name) count for less than rare ones. Queries are
// compared with cosine similarity.
package textutil
