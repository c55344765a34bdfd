package usecase

import (
	"github.com/stylelens/backend/internal/domain"
)

// CategorizeStrict groups ranked candidates by their own category and
// truncates each group independently to maxPerCategory. Every fixed category
// is present in the result, empty when nothing matched.
func CategorizeStrict(candidates []domain.ScoredCandidate, maxPerCategory int) map[domain.Category][]domain.ScoredCandidate {
	out := make(map[domain.Category][]domain.ScoredCandidate, len(domain.Categories()))
	for _, c := range domain.Categories() {
		out[c] = []domain.ScoredCandidate{}
	}

	for _, cand := range candidates {
		group := out[cand.Product.Category]
		if len(group) >= maxPerCategory {
			continue
		}
		out[cand.Product.Category] = append(group, cand)
	}

	return out
}

// RoundRobin interleaves ranked candidates fairly across categories: the
// ranked list is split into per-category FIFO queues, then the front of each
// non-empty queue is taken in turn, wrapping, until maxResults is reached or
// every queue is drained. No single category can starve the others.
func RoundRobin(candidates []domain.ScoredCandidate, maxResults int) []domain.ScoredCandidate {
	if maxResults <= 0 {
		return []domain.ScoredCandidate{}
	}

	// Queues keyed by first appearance so the best-ranked category leads
	order := []domain.Category{}
	queues := make(map[domain.Category][]domain.ScoredCandidate)
	for _, cand := range candidates {
		c := cand.Product.Category
		if _, seen := queues[c]; !seen {
			order = append(order, c)
		}
		queues[c] = append(queues[c], cand)
	}

	out := make([]domain.ScoredCandidate, 0, maxResults)
	for len(out) < maxResults {
		took := false
		for _, c := range order {
			q := queues[c]
			if len(q) == 0 {
				continue
			}
			out = append(out, q[0])
			queues[c] = q[1:]
			took = true
			if len(out) == maxResults {
				break
			}
		}
		if !took {
			break
		}
	}

	return out
}
