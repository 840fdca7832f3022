package post

import (
	"sync"

	"github.com/bazaarhq/core/internal/models"
)

// Statistics is a point-in-time snapshot of the post corpus. The reads run
// concurrently with no cross-read consistency, so the numbers can drift
// slightly under concurrent writes.
type Statistics struct {
	Total       int64               `json:"total"`
	Active      int64               `json:"active"`
	Deleted     int64               `json:"deleted"`
	Featured    int64               `json:"featured"`
	ByCategory  []CategoryBreakdown `json:"byCategory"`
	RecentPosts []models.PostModel  `json:"recentPosts"`
}

// CategoryBreakdown counts active posts per category.
type CategoryBreakdown struct {
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	Count        int64  `json:"count"`
}

const recentPostsLimit = 5

func (s *Service) Statistics() (*Statistics, error) {
	var (
		stats Statistics
		wg    sync.WaitGroup
		mu    sync.Mutex
		first error
	)

	run := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				if first == nil {
					first = err
				}
				mu.Unlock()
			}
		}()
	}

	count := func(dest *int64, conds ...interface{}) func() error {
		return func() error {
			tx := s.db.Model(&models.PostModel{})
			if len(conds) > 0 {
				tx = tx.Where(conds[0], conds[1:]...)
			}
			return tx.Count(dest).Error
		}
	}

	run(count(&stats.Total))
	run(count(&stats.Active, "status = ?", models.PostStatusActive))
	run(count(&stats.Deleted, "status = ?", models.PostStatusDeleted))
	run(count(&stats.Featured, "featured = ? AND status = ?", true, models.PostStatusActive))

	run(func() error {
		return s.db.Model(&models.PostModel{}).
			Select("posts.category_id, categories.name AS category_name, COUNT(*) AS count").
			Joins("LEFT JOIN categories ON categories.id = posts.category_id").
			Where("posts.status = ?", models.PostStatusActive).
			Group("posts.category_id, categories.name").
			Order("count DESC").
			Scan(&stats.ByCategory).Error
	})

	run(func() error {
		return s.db.Where("status = ?", models.PostStatusActive).
			Preload("Category").
			Order("created_at DESC").
			Limit(recentPostsLimit).
			Find(&stats.RecentPosts).Error
	})

	wg.Wait()
	if first != nil {
		return nil, first
	}
	if stats.ByCategory == nil {
		stats.ByCategory = []CategoryBreakdown{}
	}
	if stats.RecentPosts == nil {
		stats.RecentPosts = []models.PostModel{}
	}
	return &stats, nil
}
