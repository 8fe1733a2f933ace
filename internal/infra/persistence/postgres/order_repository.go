package postgres

import (
	"context"
	"time"

	"coursecart/internal/domain/entity"
	domainerrors "coursecart/internal/domain/errors"
	"coursecart/internal/domain/repository"
	"coursecart/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the domain.OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// Create persists a new order together with its line items. GORM inserts the
// association rows with the generated order id.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("order number already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrOrderNotFound.WrapMessage("order buyer does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt
	for i := range orderM.LineItems {
		order.LineItems[i].ID = orderM.LineItems[i].ID
		order.LineItems[i].OrderID = orderM.LineItems[i].OrderID
	}

	return nil
}

// FindByOrderNumber retrieves an order by its human-facing number, including line items.
func (repo *orderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	var orderM model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("LineItems").
		Where("order_number = ?", orderNumber).
		First(&orderM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by number")
	}

	return toOrderDomain(&orderM), nil
}

// FindByBuyer retrieves all orders belonging to a buyer, newest first.
func (repo *orderRepository) FindByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*entity.Order, error) {
	var orderMs []model.OrderModel
	err := repo.db.WithContext(ctx).
		Preload("LineItems").
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&orderMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find orders by buyer")
	}

	orders := make([]*entity.Order, 0, len(orderMs))
	for i := range orderMs {
		orders = append(orders, toOrderDomain(&orderMs[i]))
	}

	return orders, nil
}

// UpdateStatusFromPending runs the conditional terminal-status write. The
// WHERE clause pins the transition to rows still in pending, so when two
// reconciliation attempts race, exactly one write reports an affected row.
func (repo *orderRepository) UpdateStatusFromPending(ctx context.Context, orderID uuid.UUID, status entity.PaymentStatus, externalRef string) error {
	if !entity.PaymentStatusPending.CanTransitionTo(status) {
		return domainerrors.ErrInvalidTransition.WrapMessage("target status is not terminal")
	}

	updates := map[string]any{
		"payment_status": string(status),
		"updated_at":     time.Now().UTC(),
	}
	if externalRef != "" {
		updates["external_payment_ref"] = externalRef
	}

	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ? AND payment_status = ?", orderID, string(entity.PaymentStatusPending)).
		Updates(updates)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrStatusConflict
	}

	return nil
}

// --- Mapper Functions ---

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]entity.OrderLineItem, 0, len(data.LineItems))
	for _, item := range data.LineItems {
		items = append(items, entity.OrderLineItem{
			ID:         item.ID,
			OrderID:    item.OrderID,
			CourseID:   item.CourseID,
			Plan:       entity.Plan(item.Plan),
			CourseName: item.CourseName,
			PriceMinor: item.PriceMinor,
		})
	}

	return &entity.Order{
		ID:          data.ID,
		OrderNumber: data.OrderNumber,
		BuyerID:     data.BuyerID,
		Billing: entity.BillingDetails{
			Name:  data.BillingName,
			Email: data.BillingEmail,
			Phone: data.BillingPhone,
			Address: entity.Address{
				Line1:      data.BillingLine1,
				Line2:      data.BillingLine2,
				City:       data.BillingCity,
				State:      data.BillingState,
				PostalCode: data.BillingPostalCode,
				Country:    data.BillingCountry,
			},
		},
		LineItems:          items,
		Currency:           data.Currency,
		SubtotalMinor:      data.SubtotalMinor,
		TaxMinor:           data.TaxMinor,
		TotalMinor:         data.TotalMinor,
		PaymentStatus:      entity.PaymentStatus(data.PaymentStatus),
		ExternalPaymentRef: data.ExternalPaymentRef,
		CreatedAt:          data.CreatedAt,
		UpdatedAt:          data.UpdatedAt,
	}
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel for persistence.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	items := make([]model.OrderLineItemModel, 0, len(data.LineItems))
	for _, item := range data.LineItems {
		items = append(items, model.OrderLineItemModel{
			ID:         item.ID,
			OrderID:    item.OrderID,
			CourseID:   item.CourseID,
			Plan:       string(item.Plan),
			CourseName: item.CourseName,
			PriceMinor: item.PriceMinor,
		})
	}

	return &model.OrderModel{
		ID:                 data.ID,
		OrderNumber:        data.OrderNumber,
		BuyerID:            data.BuyerID,
		BillingName:        data.Billing.Name,
		BillingEmail:       data.Billing.Email,
		BillingPhone:       data.Billing.Phone,
		BillingLine1:       data.Billing.Address.Line1,
		BillingLine2:       data.Billing.Address.Line2,
		BillingCity:        data.Billing.Address.City,
		BillingState:       data.Billing.Address.State,
		BillingPostalCode:  data.Billing.Address.PostalCode,
		BillingCountry:     data.Billing.Address.Country,
		Currency:           data.Currency,
		SubtotalMinor:      data.SubtotalMinor,
		TaxMinor:           data.TaxMinor,
		TotalMinor:         data.TotalMinor,
		PaymentStatus:      string(data.PaymentStatus),
		ExternalPaymentRef: data.ExternalPaymentRef,
		LineItems:          items,
	}
}
