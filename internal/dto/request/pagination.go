package request

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListMoviesRequest holds the query of GET /movies.
type ListMoviesRequest struct {
	Limit  int
	Skip   int
	Search string
}

// Normalize replaces out of range values. A zero limit is kept and yields an
// empty page.
func (r *ListMoviesRequest) Normalize() {
	if r.Limit < 0 {
		r.Limit = DefaultLimit
	}
	if r.Limit > MaxLimit {
		r.Limit = MaxLimit
	}
	if r.Skip < 0 {
		r.Skip = 0
	}
}
