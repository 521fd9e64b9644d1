package team

import "fmt"

// Team is an FRC team competing in a championship division. Reference data
// only; scoring never mutates it.
type Team struct {
	Key         string
	Number      int
	Name        string
	City        string
	StateProv   string
	Country     string
	RookieYear  int
	Website     string
	DivisionKey string
}

func (t Team) Validate() error {
	if t.Key == "" {
		return fmt.Errorf("team key is required")
	}
	if t.Number <= 0 {
		return fmt.Errorf("team number must be positive")
	}
	if t.DivisionKey == "" {
		return fmt.Errorf("team division key is required")
	}

	return nil
}
