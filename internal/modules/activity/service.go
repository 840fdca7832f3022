// Package activity keeps the append-only audit trail of staff actions.
package activity

import (
	"time"

	"github.com/bazaarhq/core/internal/models"
	"github.com/bazaarhq/core/internal/pkg/pagination"
	"github.com/bazaarhq/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Default page sizes. The system-wide feed pages larger than the per-user
// view.
const (
	UserPageLimit   = 20
	SystemPageLimit = 50
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log}
}

// Entry describes one audit event. Success defaults to true unless Failed
// is set.
type Entry struct {
	UserID       string
	Action       string
	Resource     string
	ResourceID   string
	Details      string
	Failed       bool
	ErrorMessage string
}

// Record appends an audit entry, taking IP and user agent from the request.
// It never fails the caller: persistence errors go to the operational log
// and nothing else.
func (s *Service) Record(c *gin.Context, e Entry) {
	record := models.ActivityModel{
		UserID:       e.UserID,
		Action:       e.Action,
		Resource:     e.Resource,
		ResourceID:   e.ResourceID,
		Details:      e.Details,
		Success:      !e.Failed,
		ErrorMessage: e.ErrorMessage,
	}
	if c != nil {
		record.IPAddress = c.ClientIP()
		record.UserAgent = c.Request.UserAgent()
	}

	if err := s.db.Create(&record).Error; err != nil {
		s.log.Warn("activity log write failed",
			zap.String("action", e.Action),
			zap.String("resource", e.Resource),
			zap.Error(err),
		)
	}
}

// Filter narrows activity listings.
type Filter struct {
	UserID   string
	Action   string
	Resource string
	From     *time.Time
	To       *time.Time
}

// ListForUser returns one user's activity, newest first.
func (s *Service) ListForUser(userID string, f Filter, q pagination.Query) ([]models.ActivityModel, response.Pagination, error) {
	f.UserID = userID
	return s.list(f, q, false)
}

// ListSystem returns activity across all users, with the acting user
// preloaded for display.
func (s *Service) ListSystem(f Filter, q pagination.Query) ([]models.ActivityModel, response.Pagination, error) {
	return s.list(f, q, true)
}

func (s *Service) list(f Filter, q pagination.Query, withUser bool) ([]models.ActivityModel, response.Pagination, error) {
	tx := s.db.Model(&models.ActivityModel{}).Order("created_at DESC")

	if f.UserID != "" {
		tx = tx.Where("user_id = ?", f.UserID)
	}
	if f.Action != "" {
		tx = tx.Where("action = ?", f.Action)
	}
	if f.Resource != "" {
		tx = tx.Where("resource = ?", f.Resource)
	}
	if f.From != nil {
		tx = tx.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		tx = tx.Where("created_at <= ?", *f.To)
	}
	if withUser {
		tx = tx.Preload("User")
	}

	var records []models.ActivityModel
	pag, err := pagination.Paginate(tx, q, &records)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return records, pag, nil
}
