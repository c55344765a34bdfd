package usecase

import (
	"testing"

	"github.com/stylelens/backend/internal/domain"
)

func candidateIn(id string, category domain.Category) domain.ScoredCandidate {
	return domain.ScoredCandidate{Product: testProduct(id, category)}
}

func TestCategorizeStrict(t *testing.T) {
	t.Run("groups by category and caps each group", func(t *testing.T) {
		candidates := []domain.ScoredCandidate{
			candidateIn("t1", domain.CategoryTop),
			candidateIn("t2", domain.CategoryTop),
			candidateIn("t3", domain.CategoryTop),
			candidateIn("p1", domain.CategoryPants),
		}

		groups := CategorizeStrict(candidates, 2)
		if len(groups[domain.CategoryTop]) != 2 {
			t.Errorf("top group = %d, want 2 (capped)", len(groups[domain.CategoryTop]))
		}
		if groups[domain.CategoryTop][0].Product.ID != "t1" {
			t.Errorf("cap must keep the best-ranked candidates")
		}
		if len(groups[domain.CategoryPants]) != 1 {
			t.Errorf("pants group = %d, want 1", len(groups[domain.CategoryPants]))
		}
	})

	t.Run("every category key present even when empty", func(t *testing.T) {
		groups := CategorizeStrict(nil, 3)
		for _, c := range domain.Categories() {
			group, ok := groups[c]
			if !ok {
				t.Errorf("missing key for category %q", c)
			}
			if group == nil {
				t.Errorf("group for %q is nil, want empty slice", c)
			}
		}
	})
}

func TestRoundRobinFairness(t *testing.T) {
	// Queues of sizes [3,1,2] for categories [top, pants, shoes] and
	// maxResults=4 must interleave as top, pants, shoes, top.
	candidates := []domain.ScoredCandidate{
		candidateIn("a1", domain.CategoryTop),
		candidateIn("a2", domain.CategoryTop),
		candidateIn("a3", domain.CategoryTop),
		candidateIn("b1", domain.CategoryPants),
		candidateIn("c1", domain.CategoryShoes),
		candidateIn("c2", domain.CategoryShoes),
	}

	out := RoundRobin(candidates, 4)

	want := []domain.Category{
		domain.CategoryTop, domain.CategoryPants, domain.CategoryShoes, domain.CategoryTop,
	}
	if len(out) != len(want) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(want))
	}
	for i, c := range want {
		if out[i].Product.Category != c {
			t.Errorf("position %d = %q, want %q", i, out[i].Product.Category, c)
		}
	}
}

func TestRoundRobinDrainsQueues(t *testing.T) {
	t.Run("stops when every queue is empty", func(t *testing.T) {
		candidates := []domain.ScoredCandidate{
			candidateIn("a1", domain.CategoryTop),
			candidateIn("b1", domain.CategoryPants),
		}
		out := RoundRobin(candidates, 10)
		if len(out) != 2 {
			t.Errorf("len(out) = %d, want 2", len(out))
		}
	})

	t.Run("single category does not repeat entries", func(t *testing.T) {
		candidates := []domain.ScoredCandidate{
			candidateIn("a1", domain.CategoryTop),
			candidateIn("a2", domain.CategoryTop),
		}
		out := RoundRobin(candidates, 5)
		if len(out) != 2 {
			t.Fatalf("len(out) = %d, want 2", len(out))
		}
		if out[0].Product.ID != "a1" || out[1].Product.ID != "a2" {
			t.Errorf("queue order broken: %q, %q", out[0].Product.ID, out[1].Product.ID)
		}
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		out := RoundRobin(nil, 3)
		if out == nil || len(out) != 0 {
			t.Errorf("out = %v, want empty non-nil slice", out)
		}
	})

	t.Run("non-positive maxResults yields empty output", func(t *testing.T) {
		out := RoundRobin([]domain.ScoredCandidate{candidateIn("a", domain.CategoryTop)}, 0)
		if len(out) != 0 {
			t.Errorf("len(out) = %d, want 0", len(out))
		}
	})
}
