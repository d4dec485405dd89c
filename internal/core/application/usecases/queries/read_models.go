// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models shaped for the HTTP layer; the role rules of
// services.AccessPolicy decide what each actor may see.
package queries

import (
	"time"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/domain/model/robot"
	"campusdelivery/internal/core/domain/model/user"
)

// OrderResponse represents an order in the read model.
type OrderResponse struct {
	ID         kernel.UUID
	StudentID  kernel.UUID
	AssigneeID *kernel.UUID
	Details    order.Details
	Status     order.Status
	Proof      string
	CreatedAt  time.Time
}

// RobotResponse represents a robot in the read model.
type RobotResponse struct {
	ID              kernel.UUID
	Name            string
	IsAvailable     bool
	CurrentOrderID  *kernel.UUID
	NextAvailableAt *time.Time
}

// UserResponse represents a user in the read model.
type UserResponse struct {
	ID       kernel.UUID
	Username string
	Roles    []user.Role
}

// NewOrderResponse copies an order aggregate into its read model.
func NewOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:         o.ID(),
		StudentID:  o.StudentID(),
		AssigneeID: o.Assignee(),
		Details:    o.Details(),
		Status:     o.Status(),
		Proof:      o.Proof(),
		CreatedAt:  o.CreatedAt(),
	}
}

// NewRobotResponse copies a robot aggregate into its read model.
func NewRobotResponse(r *robot.Robot) RobotResponse {
	return RobotResponse{
		ID:              r.ID(),
		Name:            r.Name(),
		IsAvailable:     r.IsAvailable(),
		CurrentOrderID:  r.CurrentOrder(),
		NextAvailableAt: r.NextAvailableAt(),
	}
}

// NewUserResponse copies a user aggregate into its read model.
func NewUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:       u.ID(),
		Username: u.Username(),
		Roles:    u.Roles().List(),
	}
}

func orderResponses(orders []*order.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o))
	}
	return out
}
