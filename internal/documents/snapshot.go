package documents

import (
	"context"
	"slices"

	"github.com/goliatone/go-filecms/pkg/interfaces"
)

// Snapshot is the document listing taken once at the start of a request.
// Existence checks within that request consult the snapshot, not the disk.
type Snapshot struct {
	names []string
	index map[string]struct{}
}

// NewSnapshot builds a snapshot from names, keeping their order.
func NewSnapshot(names []string) Snapshot {
	index := make(map[string]struct{}, len(names))
	for _, name := range names {
		index[name] = struct{}{}
	}
	return Snapshot{names: slices.Clone(names), index: index}
}

// TakeSnapshot lists the store once.
func TakeSnapshot(ctx context.Context, store interfaces.DocumentStore) (Snapshot, error) {
	names, err := store.List(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return NewSnapshot(names), nil
}

// Names returns the listed names in enumeration order.
func (s Snapshot) Names() []string {
	return slices.Clone(s.names)
}

// Has reports whether name was listed.
func (s Snapshot) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Len returns the number of listed documents.
func (s Snapshot) Len() int {
	return len(s.names)
}
