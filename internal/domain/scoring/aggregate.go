package scoring

import "sort"

// AggregateGlobal folds per-division and championship scores into one
// overall standing per user, sorted by total descending with user ID as the
// tiebreaker. Users who only entered some divisions still appear; missing
// scores count as zero.
func AggregateGlobal(divisions []DivisionScore, einstein []EinsteinScore) []GlobalScore {
	byUser := make(map[string]*GlobalScore)
	ensure := func(userID string) *GlobalScore {
		if g, ok := byUser[userID]; ok {
			return g
		}
		g := &GlobalScore{UserID: userID}
		byUser[userID] = g
		return g
	}

	for _, d := range divisions {
		ensure(d.UserID).DivisionTotal += d.Sum
	}
	for _, e := range einstein {
		ensure(e.UserID).EinsteinTotal += e.Sum
	}

	out := make([]GlobalScore, 0, len(byUser))
	for _, g := range byUser {
		g.Sum = g.DivisionTotal + g.EinsteinTotal
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sum != out[j].Sum {
			return out[i].Sum > out[j].Sum
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}
