package service

import (
	"sort"

	"portfolioapi/internal/model"
)

// BuildThreads arranges flat comment rows into reply trees.
//
// A comment is top-level when it has no parent, when its parent is not in
// rows, or when its parent id is not smaller than its own (which cannot form
// a cycle). Every level is ordered chronologically, ties broken by id. Each
// input comment appears exactly once in the output.
func BuildThreads(rows []model.Comment) []model.Comment {
	byID := make(map[int64]int, len(rows))
	for i := range rows {
		byID[rows[i].ID] = i
	}

	children := make(map[int64][]int, len(rows))
	var roots []int
	for i := range rows {
		pid := rows[i].ParentID
		if pid == nil {
			roots = append(roots, i)
			continue
		}
		if _, ok := byID[*pid]; !ok || *pid >= rows[i].ID {
			roots = append(roots, i)
			continue
		}
		children[*pid] = append(children[*pid], i)
	}

	less := func(idx []int) func(a, b int) bool {
		return func(a, b int) bool {
			ca, cb := rows[idx[a]], rows[idx[b]]
			if !ca.CreatedAt.Equal(cb.CreatedAt) {
				return ca.CreatedAt.Before(cb.CreatedAt)
			}
			return ca.ID < cb.ID
		}
	}

	var build func(i int) model.Comment
	build = func(i int) model.Comment {
		c := rows[i]
		kids := children[c.ID]
		sort.SliceStable(kids, less(kids))
		c.Replies = make([]model.Comment, 0, len(kids))
		for _, k := range kids {
			c.Replies = append(c.Replies, build(k))
		}
		return c
	}

	sort.SliceStable(roots, less(roots))
	out := make([]model.Comment, 0, len(roots))
	for _, r := range roots {
		out = append(out, build(r))
	}
	return out
}
