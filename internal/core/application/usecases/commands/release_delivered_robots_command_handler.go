package commands

import (
	"context"
	"errors"

	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/pkg/errs"
)

// ReleaseDeliveredRobotsCommandHandler is the recovery net behind the
// release-on-delivery rule: any busy robot whose order is DELIVERED or gone
// goes back to the pool.
type ReleaseDeliveredRobotsCommandHandler struct {
	uowFactory UoWFactory
}

func NewReleaseDeliveredRobotsCommandHandler(uowFactory UoWFactory) ReleaseDeliveredRobotsCommandHandler {
	return ReleaseDeliveredRobotsCommandHandler{uowFactory: uowFactory}
}

// Handle returns the number of robots released.
func (h ReleaseDeliveredRobotsCommandHandler) Handle(ctx context.Context, cmd ReleaseDeliveredRobotsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	robotRepo := uow.RobotRepository()
	orderRepo := uow.OrderRepository()

	busy, err := robotRepo.ListBusy(ctx)
	if err != nil {
		return 0, err
	}

	released := 0
	for _, r := range busy {
		orderID := r.CurrentOrder()
		if orderID == nil {
			continue
		}

		carried, getErr := orderRepo.Get(ctx, *orderID)
		switch {
		case errors.Is(getErr, errs.ErrObjectNotFound):
		case getErr != nil:
			return 0, getErr
		case carried.Status() != order.Delivered:
			continue
		}

		// the snapshot may be stale: only free the robot still carrying this order
		freed, releaseErr := robotRepo.ReleaseByOrder(ctx, *orderID)
		if releaseErr != nil {
			return 0, releaseErr
		}
		if freed != nil {
			released++
		}
	}

	if released == 0 {
		return 0, nil
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return released, nil
}
