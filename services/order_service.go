package services

import (
	"errors"
	"fmt"
	"strings"

	"romi-backend/config"
	"romi-backend/models"

	"gorm.io/gorm"
)

type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

type OrderItemInput struct {
	MenuItemID uint `json:"menuItemId"`
	Quantity   int  `json:"quantity"`
}

type CreateOrderInput struct {
	CustomerName  string
	CustomerPhone string
	Items         []OrderItemInput
	OrderType     string
	Notes         string
}

// Create places a restaurant order. Each item's name and price are captured
// from the menu at order time, so the stored totals survive later menu
// edits. TotalAmount is the sum of captured price x quantity.
func (s *OrderService) Create(in CreateOrderInput) (*models.Order, error) {
	if strings.TrimSpace(in.CustomerName) == "" {
		return nil, &ValidationError{Message: "customerName is required"}
	}
	if strings.TrimSpace(in.CustomerPhone) == "" {
		return nil, &ValidationError{Message: "customerPhone is required"}
	}
	if len(in.Items) == 0 {
		return nil, &ValidationError{Message: "order must contain at least one item"}
	}
	if in.OrderType == "" {
		in.OrderType = models.OrderTypeTakeaway
	}
	if !models.ValidOrderType(in.OrderType) {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown order type %q", in.OrderType)}
	}

	var order models.Order
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		items := make([]models.OrderItem, 0, len(in.Items))
		total := 0.0
		for _, item := range in.Items {
			qty := item.Quantity
			if qty <= 0 {
				qty = 1
			}

			var menuItem models.MenuItem
			if err := tx.First(&menuItem, item.MenuItemID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Message: "one or more menu items not found"}
				}
				return fmt.Errorf("failed to resolve menu item %d: %w", item.MenuItemID, err)
			}
			if !menuItem.IsAvailable {
				return &ValidationError{Message: fmt.Sprintf("%s is currently unavailable", menuItem.Name)}
			}

			id := menuItem.ID
			items = append(items, models.OrderItem{
				MenuItemID: &id,
				Name:       menuItem.Name,
				Price:      menuItem.Price,
				Quantity:   qty,
			})
			total += menuItem.Price * float64(qty)
		}

		order = models.Order{
			CustomerName:  strings.TrimSpace(in.CustomerName),
			CustomerPhone: strings.TrimSpace(in.CustomerPhone),
			Items:         items,
			OrderType:     in.OrderType,
			Status:        models.OrderPending,
			TotalAmount:   total,
			Notes:         in.Notes,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &order, nil
}

func (s *OrderService) GetAll() ([]models.Order, error) {
	var list []models.Order
	if err := s.DB.Preload("Items").Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	return list, nil
}

func (s *OrderService) GetByPhone(phone string) ([]models.Order, error) {
	var list []models.Order
	if err := s.DB.
		Preload("Items").
		Where("customer_phone = ?", strings.TrimSpace(phone)).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders by phone: %w", err)
	}
	return list, nil
}

func (s *OrderService) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.DB.Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Message: "order not found"}
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}
	return &order, nil
}

// UpdateStatus follows the same policy as bookings: any valid status by
// default, the linear kitchen flow when strict transitions are configured.
func (s *OrderService) UpdateStatus(id uint, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown order status %q", status)}
	}

	order, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if config.Billing.StrictTransitions && order.Status != status &&
		!models.OrderTransitionAllowed(order.Status, status) {
		return nil, &ValidationError{
			Message: fmt.Sprintf("cannot change order status from %s to %s", order.Status, status),
		}
	}

	if err := s.DB.Model(order).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	order.Status = status
	return order, nil
}
