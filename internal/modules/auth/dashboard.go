package auth

import (
	"sync"
	"time"

	"github.com/bazaarhq/core/internal/models"
)

// DashboardStats is the owner dashboard summary. Like the post statistics
// it is a best-effort snapshot assembled from concurrent reads.
type DashboardStats struct {
	TotalPosts       int64 `json:"totalPosts"`
	ActivePosts      int64 `json:"activePosts"`
	ActiveCategories int64 `json:"activeCategories"`
	ActiveModerators int64 `json:"activeModerators"`
	ActivitiesToday  int64 `json:"activitiesToday"`
}

func (s *Service) DashboardStats() (*DashboardStats, error) {
	var (
		stats DashboardStats
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

	run(func() error {
		return s.db.Model(&models.PostModel{}).Count(&stats.TotalPosts).Error
	})
	run(func() error {
		return s.db.Model(&models.PostModel{}).
			Where("status = ?", models.PostStatusActive).
			Count(&stats.ActivePosts).Error
	})
	run(func() error {
		return s.db.Model(&models.CategoryModel{}).
			Where("is_active = ?", true).
			Count(&stats.ActiveCategories).Error
	})
	run(func() error {
		return s.db.Model(&models.UserModel{}).
			Where("role = ? AND is_active = ?", models.RoleModerator, true).
			Count(&stats.ActiveModerators).Error
	})
	run(func() error {
		midnight := time.Now().Truncate(24 * time.Hour)
		return s.db.Model(&models.ActivityModel{}).
			Where("created_at >= ?", midnight).
			Count(&stats.ActivitiesToday).Error
	})

	wg.Wait()
	if first != nil {
		return nil, first
	}
	return &stats, nil
}
