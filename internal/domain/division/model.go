package division

import "fmt"

// Division is one championship division, keyed by its TBA event key
// (e.g. "2022carv").
type Division struct {
	Key  string
	Name string
}

// Matchup is one head-to-head pairing in the Einstein round robin.
type Matchup struct {
	Order int
	Red   string
	Blue  string
}

// RoundRobinSize is the number of head-to-head matchups when every division
// plays every other division once.
const RoundRobinSize = 15

func (d Division) Validate() error {
	if d.Key == "" {
		return fmt.Errorf("division key is required")
	}
	if d.Name == "" {
		return fmt.Errorf("division name is required")
	}

	return nil
}
