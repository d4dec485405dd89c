package robotrepo

import (
	"time"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/robot"

	"github.com/google/uuid"
)

// RobotDTO is the "robots" row. The unique index on current_order_id keeps an
// order from being carried by two robots; NULLs do not collide.
type RobotDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name            string     `gorm:"size:50;not null;index"`
	IsAvailable     bool       `gorm:"not null;index"`
	CurrentOrderID  *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	NextAvailableAt *time.Time
}

func (RobotDTO) TableName() string {
	return "robots"
}

func fromDomain(r *robot.Robot) RobotDTO {
	var currentOrderID *uuid.UUID
	if id := r.CurrentOrder(); id != nil {
		raw := id.Bytes()
		currentOrderID = &raw
	}

	return RobotDTO{
		ID:              r.ID().Bytes(),
		Name:            r.Name(),
		IsAvailable:     r.IsAvailable(),
		CurrentOrderID:  currentOrderID,
		NextAvailableAt: r.NextAvailableAt(),
	}
}

func toDomain(dto RobotDTO) (*robot.Robot, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var currentOrder *kernel.UUID
	if dto.CurrentOrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.CurrentOrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		currentOrder = &oID
	}

	return robot.RestoreRobot(id, dto.Name, dto.IsAvailable, currentOrder, dto.NextAvailableAt)
}

// bindingColumns are the columns written when availability changes.
func bindingColumns(dto RobotDTO) map[string]any {
	columns := map[string]any{
		"is_available":     dto.IsAvailable,
		"current_order_id": nil,
	}
	if dto.CurrentOrderID != nil {
		columns["current_order_id"] = *dto.CurrentOrderID
	}
	return columns
}
