// Package post implements product listing lifecycle and the filtered
// listing query engine.
package post

import (
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/bazaarhq/core/internal/models"
	"github.com/bazaarhq/core/internal/modules/category"
	"github.com/bazaarhq/core/internal/modules/storage/file"
	"github.com/bazaarhq/core/internal/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found or inactive")
	ErrNotDeleted       = errors.New("post is not deleted")
)

// PropertyError carries schema validation failures for category properties.
type PropertyError struct {
	Fields []response.FieldError
}

func (e *PropertyError) Error() string { return "category properties failed validation" }

type Service struct {
	db         *gorm.DB
	store      *file.Store
	categories *category.Service
	log        *zap.Logger
}

func NewService(db *gorm.DB, store *file.Store, categories *category.Service, log *zap.Logger) *Service {
	return &Service{db: db, store: store, categories: categories, log: log}
}

type WriteInput struct {
	Title      string
	Body       string
	Price      *float64
	CategoryID string
	Properties models.PropertyMap
	Tags       []string
	Featured   *bool
}

// Create stores the image first, then the record. If the record write fails
// the saved files are removed so no orphan is left behind.
func (s *Service) Create(input WriteInput, image *multipart.FileHeader, userID string) (*models.PostModel, error) {
	cat, err := s.requireCategory(input.CategoryID)
	if err != nil {
		return nil, err
	}
	if errs := category.ValidateProperties(cat, input.Properties); len(errs) > 0 {
		return nil, &PropertyError{Fields: errs}
	}

	var info *models.FileInfo
	if image != nil {
		info, err = s.store.Save(image)
		if err != nil {
			return nil, err
		}
	}

	post := models.PostModel{
		Title:       input.Title,
		Body:        input.Body,
		CategoryID:  input.CategoryID,
		Properties:  input.Properties,
		Tags:        NormalizeTags(input.Tags),
		Status:      models.PostStatusActive,
		Image:       info,
		CreatedByID: userID,
		UpdatedByID: userID,
	}
	if input.Price != nil {
		post.Price = *input.Price
	}
	if input.Featured != nil {
		post.Featured = *input.Featured
	}
	post.SyncTagsText()

	if err := s.db.Create(&post).Error; err != nil {
		// Best-effort cleanup of the just-saved upload.
		s.store.Delete(info)
		return nil, fmt.Errorf("creating post: %w", err)
	}
	post.Category = cat
	return &post, nil
}

// GetOne returns nil for missing or soft-deleted posts. With trackView the
// read also bumps the view counter via an atomic column update; the struct
// reflects the incremented value.
func (s *Service) GetOne(id string, trackView bool) (*models.PostModel, error) {
	post, err := s.find(id)
	if err != nil || post == nil {
		return nil, err
	}
	if post.IsDeleted() {
		return nil, nil
	}

	if trackView {
		if err := s.db.Model(post).
			UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
			return nil, fmt.Errorf("tracking view: %w", err)
		}
		post.Views++
	}
	return post, nil
}

// Edit applies a partial update. A replacement image is written before the
// old one is removed, so the post never points at a missing file.
func (s *Service) Edit(id string, input WriteInput, image *multipart.FileHeader, userID string) (*models.PostModel, error) {
	post, err := s.find(id)
	if err != nil || post == nil {
		return nil, err
	}
	if post.IsDeleted() {
		return nil, nil
	}

	if input.CategoryID != "" && input.CategoryID != post.CategoryID {
		if _, err := s.requireCategory(input.CategoryID); err != nil {
			return nil, err
		}
		post.CategoryID = input.CategoryID
	}
	if input.Title != "" {
		post.Title = input.Title
	}
	if input.Body != "" {
		post.Body = input.Body
	}
	if input.Price != nil {
		post.Price = *input.Price
	}
	if input.Properties != nil {
		post.Properties = input.Properties
	}
	if input.Tags != nil {
		post.Tags = NormalizeTags(input.Tags)
	}
	if input.Featured != nil {
		post.Featured = *input.Featured
	}

	cat, err := s.requireCategory(post.CategoryID)
	if err != nil {
		return nil, err
	}
	if errs := category.ValidateProperties(cat, post.Properties); len(errs) > 0 {
		return nil, &PropertyError{Fields: errs}
	}

	oldImage := post.Image
	if image != nil {
		info, err := s.store.Save(image)
		if err != nil {
			return nil, err
		}
		post.Image = info
	}

	post.UpdatedByID = userID
	post.SyncTagsText()
	if err := s.db.Save(post).Error; err != nil {
		if image != nil {
			s.store.Delete(post.Image)
		}
		return nil, fmt.Errorf("updating post: %w", err)
	}

	if image != nil && oldImage != nil {
		s.store.Delete(oldImage)
	}
	post.Category = cat
	return post, nil
}

// Delete soft-deletes. Reversible through Restore.
func (s *Service) Delete(id, userID string) (*models.PostModel, error) {
	post, err := s.find(id)
	if err != nil || post == nil {
		return nil, err
	}
	if post.IsDeleted() {
		return nil, nil
	}

	post.Status = models.PostStatusDeleted
	post.UpdatedByID = userID
	if err := s.db.Save(post).Error; err != nil {
		return nil, fmt.Errorf("deleting post: %w", err)
	}
	return post, nil
}

// Restore flips deleted back to active. Any other current status is
// rejected.
func (s *Service) Restore(id, userID string) (*models.PostModel, error) {
	post, err := s.find(id)
	if err != nil || post == nil {
		return nil, err
	}
	if !post.IsDeleted() {
		return nil, ErrNotDeleted
	}

	post.Status = models.PostStatusActive
	post.UpdatedByID = userID
	if err := s.db.Save(post).Error; err != nil {
		return nil, fmt.Errorf("restoring post: %w", err)
	}
	return post, nil
}

// HardDelete removes the record permanently along with its files.
func (s *Service) HardDelete(id string) (*models.PostModel, error) {
	post, err := s.find(id)
	if err != nil || post == nil {
		return nil, err
	}

	if err := s.db.Delete(&models.PostModel{}, "id = ?", post.ID).Error; err != nil {
		return nil, fmt.Errorf("hard-deleting post: %w", err)
	}
	s.store.Delete(post.Image)
	return post, nil
}

// ToggleFeatured flips the featured flag. Last write wins under concurrent
// toggles.
func (s *Service) ToggleFeatured(id, userID string) (*models.PostModel, error) {
	post, err := s.find(id)
	if err != nil || post == nil {
		return nil, err
	}
	if post.IsDeleted() {
		return nil, nil
	}

	post.Featured = !post.Featured
	post.UpdatedByID = userID
	if err := s.db.Save(post).Error; err != nil {
		return nil, fmt.Errorf("toggling featured: %w", err)
	}
	return post, nil
}

func (s *Service) find(id string) (*models.PostModel, error) {
	var post models.PostModel
	err := s.db.Preload("Category").Where("id = ?", id).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *Service) requireCategory(id string) (*models.CategoryModel, error) {
	cat, err := s.categories.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, ErrCategoryNotFound
	}
	return cat, nil
}
