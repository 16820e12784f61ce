package interfaces

import "context"

// DocumentStore is the contract every document backend satisfies. Names are
// flat file names (for example "about.md"); the store never recurses.
type DocumentStore interface {
	// List returns every document name in enumeration order.
	List(ctx context.Context) ([]string, error)
	// Read returns the full content of a document.
	Read(ctx context.Context, name string) ([]byte, error)
	// Write replaces the document content, creating it when absent.
	Write(ctx context.Context, name string, content []byte) error
	// Create validates the name and creates an empty document.
	Create(ctx context.Context, name string) error
	// Delete removes the document. Deleting a missing name is an error.
	Delete(ctx context.Context, name string) error
}
