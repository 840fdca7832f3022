package category

import (
	"github.com/bazaarhq/core/internal/models"
	"github.com/bazaarhq/core/internal/pkg/slug"
)

// SeedMattress installs the built-in mattress taxonomy: one root category
// with sized subcategories, each carrying the shared property schema.
// Existing slugs are left untouched so the seed is safe to re-run.
func (s *Service) SeedMattress(userID string) ([]models.CategoryModel, error) {
	properties := []models.CategoryProperty{
		{Name: "firmness", Type: models.PropertyTypeSelect, Options: []string{"soft", "medium", "firm", "extra-firm"}, Required: true},
		{Name: "thickness", Type: models.PropertyTypeNumber, Required: true, Unit: "cm"},
		{Name: "material", Type: models.PropertyTypeMultiselect, Options: []string{"memory-foam", "latex", "pocket-spring", "bonnell-spring", "coir", "hybrid"}, Required: true},
		{Name: "warrantyYears", Type: models.PropertyTypeNumber, Required: false, Unit: "years"},
		{Name: "removableCover", Type: models.PropertyTypeBoolean, Required: false},
	}

	root, err := s.seedOne("Mattresses", nil, properties, 0, userID)
	if err != nil {
		return nil, err
	}

	sizes := []string{"Single Mattresses", "Double Mattresses", "Queen Mattresses", "King Mattresses"}
	created := []models.CategoryModel{*root}
	for i, name := range sizes {
		sub, err := s.seedOne(name, &root.ID, properties, i+1, userID)
		if err != nil {
			return nil, err
		}
		created = append(created, *sub)
	}
	return created, nil
}

func (s *Service) seedOne(name string, parentID *string, props []models.CategoryProperty, sortOrder int, userID string) (*models.CategoryModel, error) {
	existing, err := s.GetBySlug(slug.Derive(name))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	return s.Create(CreateInput{
		Name:       name,
		ParentID:   parentID,
		Properties: props,
		SortOrder:  sortOrder,
	}, userID)
}
