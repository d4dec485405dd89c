package userrepo

import (
	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO keeps one boolean column per role.
type UserDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"size:150;not null;uniqueIndex"`
	IsStudent    bool      `gorm:"not null;default:false"`
	IsTeacher    bool      `gorm:"not null;default:false"`
	IsDispatcher bool      `gorm:"not null;default:false"`
	IsAdmin      bool      `gorm:"not null;default:false"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:           u.ID().Bytes(),
		Username:     u.Username(),
		IsStudent:    u.Has(user.Student),
		IsTeacher:    u.Has(user.Teacher),
		IsDispatcher: u.Has(user.Dispatcher),
		IsAdmin:      u.Has(user.Admin),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var list []user.Role
	for role, set := range map[user.Role]bool{
		user.Student:    dto.IsStudent,
		user.Teacher:    dto.IsTeacher,
		user.Dispatcher: dto.IsDispatcher,
		user.Admin:      dto.IsAdmin,
	} {
		if set {
			list = append(list, role)
		}
	}

	roles, err := user.NewRoles(list...)
	if err != nil {
		return nil, err
	}
	return user.NewUser(id, dto.Username, roles)
}
