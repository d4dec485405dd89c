package orderrepo

import (
	"time"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
)

type OrderDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	StudentID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	AssigneeID *uuid.UUID `gorm:"type:uuid"`

	PackageType string `gorm:"size:100;not null"`
	Weight      string `gorm:"size:50;not null"`
	Fragile     bool
	Description string `gorm:"type:text"`

	PickupBuilding     string `gorm:"size:100;not null"`
	PickupInstructions string `gorm:"type:text"`
	DeliveryBuilding   string `gorm:"size:100;not null"`

	DeliverySpeed string `gorm:"size:50;not null"`
	ScheduledDate string `gorm:"size:10"`
	ScheduledTime string `gorm:"size:5"`

	Status    int       `gorm:"not null;index"`
	Proof     string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;index"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	var assigneeID *uuid.UUID
	if id := o.Assignee(); id != nil {
		raw := id.Bytes()
		assigneeID = &raw
	}

	d := o.Details()
	return OrderDTO{
		ID:                 o.ID().Bytes(),
		StudentID:          o.StudentID().Bytes(),
		AssigneeID:         assigneeID,
		PackageType:        d.PackageType,
		Weight:             d.Weight,
		Fragile:            d.Fragile,
		Description:        d.Description,
		PickupBuilding:     d.PickupBuilding,
		PickupInstructions: d.PickupInstructions,
		DeliveryBuilding:   d.DeliveryBuilding,
		DeliverySpeed:      d.DeliverySpeed,
		ScheduledDate:      d.ScheduledDate,
		ScheduledTime:      d.ScheduledTime,
		Status:             int(o.Status()),
		Proof:              o.Proof(),
		CreatedAt:          o.CreatedAt().UTC(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	studentID, err := kernel.UUIDFromBytes(dto.StudentID[:])
	if err != nil {
		return nil, err
	}

	var assigneeID *kernel.UUID
	if dto.AssigneeID != nil {
		aID, assigneeErr := kernel.UUIDFromBytes((*dto.AssigneeID)[:])
		if assigneeErr != nil {
			return nil, assigneeErr
		}
		assigneeID = &aID
	}

	details := order.Details{
		PackageType:        dto.PackageType,
		Weight:             dto.Weight,
		Fragile:            dto.Fragile,
		Description:        dto.Description,
		PickupBuilding:     dto.PickupBuilding,
		PickupInstructions: dto.PickupInstructions,
		DeliveryBuilding:   dto.DeliveryBuilding,
		DeliverySpeed:      dto.DeliverySpeed,
		ScheduledDate:      dto.ScheduledDate,
		ScheduledTime:      dto.ScheduledTime,
	}

	return order.RestoreOrder(id, studentID, assigneeID, details, order.Status(dto.Status), dto.Proof, dto.CreatedAt)
}
