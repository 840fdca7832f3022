// Package category manages the hierarchical taxonomy posts are filed under.
package category

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bazaarhq/core/internal/models"
	"github.com/bazaarhq/core/internal/pkg/slug"
	"gorm.io/gorm"
)

// ErrHasSubcategories and ErrHasPosts signal unmet deletion preconditions.
var (
	ErrHasSubcategories = errors.New("category has active subcategories")
	ErrHasPosts         = errors.New("category has posts referencing it")
	ErrDuplicate        = errors.New("category name or slug already exists")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type CreateInput struct {
	Name       string
	ParentID   *string
	Properties []models.CategoryProperty
	SortOrder  int
}

type UpdateInput struct {
	Name        *string
	ParentID    *string
	ClearParent bool
	Properties  []models.CategoryProperty
	SortOrder   *int
	IsActive    *bool
}

func (s *Service) Create(input CreateInput, userID string) (*models.CategoryModel, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.New("category name is required")
	}

	if input.ParentID != nil {
		parent, err := s.GetByID(*input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, errors.New("parent category not found")
		}
	}

	category := models.CategoryModel{
		Name:        name,
		Slug:        slug.Derive(name),
		ParentID:    input.ParentID,
		Properties:  input.Properties,
		IsActive:    true,
		SortOrder:   input.SortOrder,
		CreatedByID: userID,
		UpdatedByID: userID,
	}
	if err := s.db.Create(&category).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("creating category: %w", err)
	}
	return &category, nil
}

func (s *Service) Update(id string, input UpdateInput, userID string) (*models.CategoryModel, error) {
	category, err := s.GetByID(id)
	if err != nil || category == nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, errors.New("category name cannot be empty")
		}
		if name != category.Name {
			category.Name = name
			category.Slug = slug.Derive(name)
		}
	}
	if input.ClearParent {
		category.ParentID = nil
	} else if input.ParentID != nil {
		// No cycle check here. A parent chain forming a loop will break
		// hierarchy traversal; callers are trusted not to create one.
		parent, err := s.GetByID(*input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, errors.New("parent category not found")
		}
		category.ParentID = input.ParentID
	}
	if input.Properties != nil {
		category.Properties = input.Properties
	}
	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	category.UpdatedByID = userID

	if err := s.db.Save(category).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("updating category: %w", err)
	}
	return category, nil
}

// List returns all active categories ordered for display.
func (s *Service) List() ([]models.CategoryModel, error) {
	var categories []models.CategoryModel
	err := s.db.Where("is_active = ?", true).
		Order("sort_order ASC, name ASC").
		Find(&categories).Error
	return categories, err
}

// Hierarchy returns active top-level categories with their active children
// populated, both levels ordered by sort order then name.
func (s *Service) Hierarchy() ([]models.CategoryModel, error) {
	var roots []models.CategoryModel
	err := s.db.Where("parent_id IS NULL AND is_active = ?", true).
		Order("sort_order ASC, name ASC").
		Preload("Children", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("sort_order ASC, name ASC")
		}).
		Find(&roots).Error
	return roots, err
}

// GetByID returns an active category or nil when absent.
func (s *Service) GetByID(id string) (*models.CategoryModel, error) {
	var category models.CategoryModel
	err := s.db.Where("id = ? AND is_active = ?", id, true).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetBySlug returns an active category with its parent populated, or nil.
func (s *Service) GetBySlug(categorySlug string) (*models.CategoryModel, error) {
	var category models.CategoryModel
	err := s.db.Where("slug = ? AND is_active = ?", categorySlug, true).
		Preload("Parent").
		First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Delete soft-deletes a category once nothing active depends on it. Check
// order: subcategories first, then posts.
func (s *Service) Delete(id, userID string) (*models.CategoryModel, error) {
	category, err := s.GetByID(id)
	if err != nil || category == nil {
		return nil, err
	}

	var subCount int64
	if err := s.db.Model(&models.CategoryModel{}).
		Where("parent_id = ? AND is_active = ?", id, true).
		Count(&subCount).Error; err != nil {
		return nil, err
	}
	if subCount > 0 {
		return nil, ErrHasSubcategories
	}

	var postCount int64
	if err := s.db.Model(&models.PostModel{}).
		Where("category_id = ? AND status <> ?", id, models.PostStatusDeleted).
		Count(&postCount).Error; err != nil {
		return nil, err
	}
	if postCount > 0 {
		return nil, ErrHasPosts
	}

	category.IsActive = false
	category.UpdatedByID = userID
	if err := s.db.Save(category).Error; err != nil {
		return nil, fmt.Errorf("deleting category: %w", err)
	}
	return category, nil
}

func isDuplicateErr(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "duplicate")
}
