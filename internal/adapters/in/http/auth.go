package http

import (
	"errors"
	"fmt"

	"campusdelivery/internal/core/application/usecases/queries"
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// UserIDHeader carries the caller's id, set by the upstream gateway.
const UserIDHeader = "X-User-ID"

const actorKey = "actor"

// Authenticate resolves X-User-ID to a known user and stores it on the context.
func (s *Server) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := c.Request().Header.Get(UserIDHeader)
		if raw == "" {
			return fmt.Errorf("%w: missing %s header", ErrUnauthenticated, UserIDHeader)
		}

		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return fmt.Errorf("%w: malformed %s header", ErrUnauthenticated, UserIDHeader)
		}

		query, err := queries.NewGetCurrentUserQuery(id)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnauthenticated, err)
		}

		me, err := s.h.GetCurrentUser.Handle(c.Request().Context(), query)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return fmt.Errorf("%w: unknown user %s", ErrUnauthenticated, id)
		}
		if err != nil {
			return err
		}

		c.Set(actorKey, me)
		return next(c)
	}
}

func currentUser(c echo.Context) queries.UserResponse {
	me, _ := c.Get(actorKey).(queries.UserResponse)
	return me
}

func actorID(c echo.Context) kernel.UUID {
	return currentUser(c).ID
}
