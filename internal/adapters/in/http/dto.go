package http

import (
	"time"

	"campusdelivery/internal/core/application/usecases/queries"
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

type OrderRequest struct {
	PackageType        string `json:"package_type"`
	Weight             string `json:"weight"`
	Fragile            bool   `json:"fragile"`
	Description        string `json:"description"`
	PickupBuilding     string `json:"pickup_building"`
	PickupInstructions string `json:"pickup_instructions"`
	DeliveryBuilding   string `json:"delivery_building"`
	DeliverySpeed      string `json:"delivery_speed"`
	ScheduledDate      string `json:"scheduled_date"`
	ScheduledTime      string `json:"scheduled_time"`
}

func (r OrderRequest) details() order.Details {
	return order.Details{
		PackageType:        r.PackageType,
		Weight:             r.Weight,
		Fragile:            r.Fragile,
		Description:        r.Description,
		PickupBuilding:     r.PickupBuilding,
		PickupInstructions: r.PickupInstructions,
		DeliveryBuilding:   r.DeliveryBuilding,
		DeliverySpeed:      r.DeliverySpeed,
		ScheduledDate:      r.ScheduledDate,
		ScheduledTime:      r.ScheduledTime,
	}
}

type Order struct {
	ID                 string    `json:"id"`
	StudentID          string    `json:"student_id"`
	AssigneeID         *string   `json:"assignee_id"`
	PackageType        string    `json:"package_type"`
	Weight             string    `json:"weight"`
	Fragile            bool      `json:"fragile"`
	Description        string    `json:"description"`
	PickupBuilding     string    `json:"pickup_building"`
	PickupInstructions string    `json:"pickup_instructions"`
	DeliveryBuilding   string    `json:"delivery_building"`
	DeliverySpeed      string    `json:"delivery_speed"`
	ScheduledDate      string    `json:"scheduled_date,omitempty"`
	ScheduledTime      string    `json:"scheduled_time,omitempty"`
	Status             string    `json:"status"`
	Proof              string    `json:"proof"`
	CreatedAt          time.Time `json:"created_at"`
}

func toOrder(o queries.OrderResponse) Order {
	return Order{
		ID:                 o.ID.String(),
		StudentID:          o.StudentID.String(),
		AssigneeID:         idString(o.AssigneeID),
		PackageType:        o.Details.PackageType,
		Weight:             o.Details.Weight,
		Fragile:            o.Details.Fragile,
		Description:        o.Details.Description,
		PickupBuilding:     o.Details.PickupBuilding,
		PickupInstructions: o.Details.PickupInstructions,
		DeliveryBuilding:   o.Details.DeliveryBuilding,
		DeliverySpeed:      o.Details.DeliverySpeed,
		ScheduledDate:      o.Details.ScheduledDate,
		ScheduledTime:      o.Details.ScheduledTime,
		Status:             o.Status.String(),
		Proof:              o.Proof,
		CreatedAt:          o.CreatedAt,
	}
}

func toOrders(list []queries.OrderResponse) []Order {
	out := make([]Order, 0, len(list))
	for _, o := range list {
		out = append(out, toOrder(o))
	}
	return out
}

type DispatchStatusRequest struct {
	Status string `json:"status"`
}

type DispatchFilter struct {
	Status string `query:"status" json:"status"`
}

type Robot struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	IsAvailable       bool       `json:"is_available"`
	CurrentOrderID    *string    `json:"current_order_id"`
	NextAvailableTime *time.Time `json:"next_available_time"`
}

func toRobot(r queries.RobotResponse) Robot {
	return Robot{
		ID:                r.ID.String(),
		Name:              r.Name,
		IsAvailable:       r.IsAvailable,
		CurrentOrderID:    idString(r.CurrentOrderID),
		NextAvailableTime: r.NextAvailableAt,
	}
}

type RobotRequest struct {
	Name              string     `json:"name"`
	NextAvailableTime *time.Time `json:"next_available_time"`
}

type User struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

func toUser(u queries.UserResponse) User {
	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, r.String())
	}
	return User{ID: u.ID.String(), Username: u.Username, Roles: roles}
}

type RegisterRequest struct {
	Username  string `json:"username"`
	IsStudent bool   `json:"is_student"`
	IsTeacher bool   `json:"is_teacher"`
}

type SetDispatcherRequest struct {
	IsDispatcher *bool `json:"is_dispatcher"`
}

type VerifyResponse struct {
	OrderID   string `json:"order_id"`
	NewStatus string `json:"new_status"`
}

func idString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
