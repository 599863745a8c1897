package services

import (
	"errors"
	"fmt"
	"strings"

	"romi-backend/models"

	"gorm.io/gorm"
)

type MenuService struct {
	DB *gorm.DB
}

func NewMenuService(db *gorm.DB) *MenuService {
	return &MenuService{DB: db}
}

// MenuFilter narrows the public menu listing.
type MenuFilter struct {
	Category      string
	AvailableOnly bool
}

func (s *MenuService) GetAll(filter MenuFilter) ([]models.MenuItem, error) {
	q := s.DB.Order("category, name")
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.AvailableOnly {
		q = q.Where("is_available = ?", true)
	}

	var items []models.MenuItem
	if err := q.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve menu items: %w", err)
	}
	return items, nil
}

func (s *MenuService) Create(item *models.MenuItem) error {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return &ValidationError{Message: "name is required"}
	}
	if !models.ValidMenuCategory(item.Category) {
		return &ValidationError{Message: fmt.Sprintf("unknown menu category %q", item.Category)}
	}
	if item.Price <= 0 {
		return &ValidationError{Message: "price must be positive"}
	}
	if item.SpiceLevel == "" {
		item.SpiceLevel = models.SpiceNone
	}
	if !models.ValidSpiceLevel(item.SpiceLevel) {
		return &ValidationError{Message: fmt.Sprintf("unknown spice level %q", item.SpiceLevel)}
	}

	if err := s.DB.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}
	return nil
}

func (s *MenuService) Update(id uint, fields map[string]interface{}) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: "menu item not found"}
		}
		return nil, fmt.Errorf("failed to retrieve menu item: %w", err)
	}

	for _, protected := range []string{"id", "ID", "created_at", "updated_at", "deleted_at"} {
		delete(fields, protected)
	}
	if c, ok := fields["category"].(string); ok && !models.ValidMenuCategory(c) {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown menu category %q", c)}
	}
	if sp, ok := fields["spice_level"].(string); ok && !models.ValidSpiceLevel(sp) {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown spice level %q", sp)}
	}

	if len(fields) > 0 {
		if err := s.DB.Model(&item).Updates(fields).Error; err != nil {
			return nil, fmt.Errorf("failed to update menu item: %w", err)
		}
	}
	return &item, nil
}

func (s *MenuService) Delete(id uint) error {
	result := s.DB.Delete(&models.MenuItem{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete menu item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Message: "menu item not found"}
	}
	return nil
}
