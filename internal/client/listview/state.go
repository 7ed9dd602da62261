package listview

// FetchState is the mutually exclusive rendering state of a list view.
type FetchState int

const (
	// StateLoading: the query is in flight and nothing can be shown yet.
	StateLoading FetchState = iota
	// StateError: the query failed; show the error, not a table.
	StateError
	// StateEmpty: the query succeeded with zero rows.
	StateEmpty
	// StateLoaded: the query succeeded with at least one row.
	StateLoaded
)

func (s FetchState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateEmpty:
		return "empty"
	case StateLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// Resolve maps a fetch outcome onto the rendering state. Exactly one state
// applies: loading wins over everything, then error, then empty vs loaded.
func Resolve(loading bool, err error, rows int) FetchState {
	switch {
	case loading:
		return StateLoading
	case err != nil:
		return StateError
	case rows == 0:
		return StateEmpty
	default:
		return StateLoaded
	}
}
