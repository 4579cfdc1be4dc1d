package taxonomy

import "context"

// Loader builds a Store from some source of taxonomic data.
type Loader interface {
	// Load reads all nodes and names and returns a complete Store.
	// If any part of the data cannot be read, no Store is returned.
	Load(ctx context.Context) (*Store, error)
}
