package dashboard

// SortState is the column header state of the leads table.
type SortState struct {
	Key       SortKey
	Direction Direction
}

// Toggle returns the state after clicking the header for key: the active
// ascending column flips to descending, anything else sorts ascending by key.
func (s SortState) Toggle(key SortKey) SortState {
	if s.Key == key && s.Direction == Ascending {
		return SortState{Key: key, Direction: Descending}
	}
	return SortState{Key: key, Direction: Ascending}
}
