// Package documents stores named text and markdown documents in a flat
// directory. Names are plain file names ending in .txt or .md; the directory
// is the only source of truth and nothing is cached between calls.
//
// FileStore is the disk-backed implementation used by the server and
// MemoryStore satisfies the same contract for tests.
package documents
