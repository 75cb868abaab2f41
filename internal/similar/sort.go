package similar

import "sort"

// SortResults sorts results by score (descending), then by identity (ascending).
func SortResults(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score == results[j].Score {
			return results[i].Entry.ID.String() < results[j].Entry.ID.String()
		}
		return results[i].Score > results[j].Score
	})
}
