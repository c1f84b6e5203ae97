package params

// StoreBuilderOption is a functional option applied to a Store during construction via NewStore.
type StoreBuilderOption func(*Store)

// WithOnChange registers a function called with the new values after every successful reload.
// It runs on the watcher goroutine.
//
// Parameters:
//   - fn: the callback
//
// Returns:
//   - StoreBuilderOption: a function that applies the callback option to a store
func WithOnChange(fn func(Params)) StoreBuilderOption {
	return func(s *Store) {
		s.onChange = fn
	}
}
