package services

import (
	"errors"
	"fmt"
	"strings"

	"romi-backend/models"

	"gorm.io/gorm"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

func (s *RoomService) GetAll() ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.Order("room_number").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve rooms: %w", err)
	}
	return rooms, nil
}

func (s *RoomService) GetByID(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: "room not found"}
		}
		return nil, fmt.Errorf("failed to retrieve room: %w", err)
	}
	return &room, nil
}

func (s *RoomService) Create(room *models.Room) error {
	room.RoomNumber = strings.TrimSpace(room.RoomNumber)
	if room.RoomNumber == "" {
		return &ValidationError{Message: "roomNumber is required"}
	}
	if !models.ValidRoomType(room.Type) {
		return &ValidationError{Message: fmt.Sprintf("unknown room type %q", room.Type)}
	}
	if room.Category == "" {
		room.Category = models.RoomCategoryStandard
	}
	if !models.ValidRoomCategory(room.Category) {
		return &ValidationError{Message: fmt.Sprintf("unknown room category %q", room.Category)}
	}
	if room.Price <= 0 {
		return &ValidationError{Message: "price must be positive"}
	}
	if room.Capacity <= 0 {
		room.Capacity = 2
	}

	if err := s.DB.Create(room).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return &ConflictError{Message: fmt.Sprintf("room number %q already exists", room.RoomNumber)}
		}
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

// Update applies a guarded field map so callers cannot rewrite identity or
// timestamps. Room number is immutable once set.
func (s *RoomService) Update(id uint, fields map[string]interface{}) (*models.Room, error) {
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}

	for _, protected := range []string{"id", "ID", "room_number", "roomNumber", "created_at", "updated_at", "deleted_at"} {
		delete(fields, protected)
	}
	if t, ok := fields["type"].(string); ok && !models.ValidRoomType(t) {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown room type %q", t)}
	}
	if c, ok := fields["category"].(string); ok && !models.ValidRoomCategory(c) {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown room category %q", c)}
	}

	if len(fields) > 0 {
		if err := s.DB.Model(&models.Room{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, fmt.Errorf("failed to update room: %w", err)
		}
	}
	return s.GetByID(id)
}

func (s *RoomService) Delete(id uint) error {
	result := s.DB.Delete(&models.Room{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete room: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Message: "room not found"}
	}
	return nil
}
