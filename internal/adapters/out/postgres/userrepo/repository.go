package userrepo

import (
	"context"
	"errors"
	"fmt"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/user"
	"campusdelivery/internal/core/ports"
	"campusdelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormUserRepository stores users in the "users" table. Duplicate usernames
// are detected through gorm.ErrDuplicatedKey, so the connection must be opened
// with gorm.Config{TranslateError: true}.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", ports.ErrUsernameTaken, aggregate.Username())
		}
		return err
	}
	return nil
}

func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).Take(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormUserRepository) Update(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&UserDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"is_student":    dto.IsStudent,
		"is_teacher":    dto.IsTeacher,
		"is_dispatcher": dto.IsDispatcher,
		"is_admin":      dto.IsAdmin,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("user", aggregate.ID().String())
	}
	return nil
}
