package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stylelens/backend/internal/domain"
)

func featureSet(style string) *domain.FeatureSet {
	return &domain.FeatureSet{
		Vector:     []float64{1, 0},
		Dimensions: 2,
		Provider:   "test",
		Metadata: domain.FeatureMetadata{
			DominantColors:     []string{"black"},
			DetectedCategories: []domain.Category{},
			OverallStyle:       style,
		},
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		cache := NewMemoryCache()
		want := featureSet("casual")

		if err := cache.Set(ctx, "k", want, time.Minute); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		got, err := cache.Get(ctx, "k")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != want {
			t.Errorf("Get() returned a different feature set")
		}
	})

	t.Run("miss on unknown key", func(t *testing.T) {
		cache := NewMemoryCache()
		_, err := cache.Get(ctx, "absent")
		if !errors.Is(err, domain.ErrCacheMiss) {
			t.Errorf("error = %v, want ErrCacheMiss", err)
		}
	})

	t.Run("expired entries miss", func(t *testing.T) {
		cache := NewMemoryCache()
		if err := cache.Set(ctx, "k", featureSet("formal"), time.Millisecond); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		time.Sleep(5 * time.Millisecond)

		_, err := cache.Get(ctx, "k")
		if !errors.Is(err, domain.ErrCacheMiss) {
			t.Errorf("error = %v, want ErrCacheMiss after expiry", err)
		}
	})

	t.Run("nil feature set rejected", func(t *testing.T) {
		cache := NewMemoryCache()
		if err := cache.Set(ctx, "k", nil, time.Minute); !errors.Is(err, domain.ErrInvalidFeatureSet) {
			t.Errorf("Set(nil) error = %v, want ErrInvalidFeatureSet", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		cache := NewMemoryCache()
		cache.Set(ctx, "k", featureSet("sporty"), time.Minute)

		if err := cache.Delete(ctx, "k"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := cache.Get(ctx, "k"); !errors.Is(err, domain.ErrCacheMiss) {
			t.Errorf("error = %v, want ErrCacheMiss after delete", err)
		}
	})

	t.Run("size and clear", func(t *testing.T) {
		cache := NewMemoryCache()
		cache.Set(ctx, "a", featureSet("casual"), time.Minute)
		cache.Set(ctx, "b", featureSet("formal"), time.Minute)

		if cache.Size() != 2 {
			t.Errorf("Size() = %d, want 2", cache.Size())
		}

		cache.Clear()
		if cache.Size() != 0 {
			t.Errorf("Size() = %d after Clear, want 0", cache.Size())
		}
	})

	t.Run("concurrent access", func(t *testing.T) {
		cache := NewMemoryCache()
		var wg sync.WaitGroup

		for i := 0; i < 10; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				cache.Set(ctx, "shared", featureSet("casual"), time.Minute)
			}()
			go func() {
				defer wg.Done()
				cache.Get(ctx, "shared")
			}()
		}
		wg.Wait()
	})
}
