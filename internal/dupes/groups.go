package dupes

import "github.com/mlsantos/pitaka/internal/model"

// GroupDuplicates clusters matched pairs into connected components of size
// two or more using breadth-first traversal over the match graph. Grouping
// is transitive: if A matches B and B matches C, all three form one group
// even when A was never directly judged a duplicate of C.
func GroupDuplicates(matches []model.DuplicateMatch) [][]model.Transaction {
	adjacency := make(map[string][]string)
	byID := make(map[string]model.Transaction)
	var order []string

	note := func(t model.Transaction) {
		if _, seen := byID[t.ID]; !seen {
			byID[t.ID] = t
			order = append(order, t.ID)
		}
	}
	for _, m := range matches {
		note(m.A)
		note(m.B)
		adjacency[m.A.ID] = append(adjacency[m.A.ID], m.B.ID)
		adjacency[m.B.ID] = append(adjacency[m.B.ID], m.A.ID)
	}

	visited := make(map[string]bool)
	var groups [][]model.Transaction

	for _, start := range order {
		if visited[start] {
			continue
		}
		visited[start] = true

		// Explicit queue; every node is enqueued at most once, so the
		// walk always terminates.
		queue := []string{start}
		var component []model.Transaction
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			component = append(component, byID[id])
			for _, next := range adjacency[id] {
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}

		if len(component) >= 2 {
			groups = append(groups, component)
		}
	}
	return groups
}
