package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"campusdelivery/internal/pkg/errs"
)

const (
	// DateLayout is the accepted format of Details.ScheduledDate.
	DateLayout = "2006-01-02"
	// TimeLayout is the accepted format of Details.ScheduledTime.
	TimeLayout = "15:04"
)

// Details describes the parcel, its route and the requested schedule.
// It is a value object: Order hands out copies and never mutates it after creation.
type Details struct {
	PackageType string
	Weight      string
	Fragile     bool
	Description string

	PickupBuilding     string
	PickupInstructions string
	DeliveryBuilding   string

	DeliverySpeed string
	// ScheduledDate is optional, formatted as DateLayout.
	ScheduledDate string
	// ScheduledTime is optional, formatted as TimeLayout.
	ScheduledTime string
}

// Validate checks required fields and the optional schedule formats.
// All problems are reported together via errors.Join.
func (d Details) Validate() error {
	return errors.Join(
		required("package_type", d.PackageType),
		required("weight", d.Weight),
		required("pickup_building", d.PickupBuilding),
		required("delivery_building", d.DeliveryBuilding),
		required("delivery_speed", d.DeliverySpeed),
		layout("scheduled_date", d.ScheduledDate, DateLayout),
		layout("scheduled_time", d.ScheduledTime, TimeLayout),
	)
}

func required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}

func layout(name, value, format string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(format, value); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%q does not match %s", value, format))
	}
	return nil
}
