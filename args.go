package herald

// Arg extracts the positional argument at index i as a T.
// Returns the value and true if present and of type T, or zero value and
// false otherwise.
//
// Example:
//
//	herald.NewListener(func(_ *herald.Registry, args ...any) any {
//	    id, ok := herald.Arg[string](args, 0)
//	    if !ok {
//	        return nil
//	    }
//	    // Process id...
//	    return nil
//	})
func Arg[T any](args []any, i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(args) {
		return zero, false
	}
	v, ok := args[i].(T)
	if !ok {
		return zero, false
	}
	return v, true
}
