package model

// PossessionFilter for querying possessions. The zero value selects everything.
type PossessionFilter struct {
	Owner string // Empty selects every owner
}
