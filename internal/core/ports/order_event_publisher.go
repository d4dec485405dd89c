package ports

import (
	"context"

	"campusdelivery/internal/core/domain/model/order"
)

// OrderEventPublisher announces committed order changes to other systems.
// Delivery is best effort; the order store stays the source of truth.
type OrderEventPublisher interface {
	PublishOrderChanged(ctx context.Context, aggregate *order.Order) error
}
