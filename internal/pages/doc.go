// Package pages turns documentation nodes into VitePress Markdown documents.
//
// Everything here is pure text generation: no I/O, no clock, no randomness.
// Identical input always yields identical output, which is what the
// incremental renderer relies on to skip unchanged documents.
package pages
