package user

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/pkg/errs"
	"campusdelivery/internal/pkg/guard"
)

// UsernameMaxLength is the longest accepted username, in characters.
const UsernameMaxLength = 150

// ErrUserIsNotConstructed is returned when using an improperly initialized User.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// Role is a single capability. The set of roles is closed.
type Role int

const (
	Student Role = iota + 1
	Teacher
	Dispatcher
	Admin
)

var roleNames = map[Role]string{
	Student:    "student",
	Teacher:    "teacher",
	Dispatcher: "dispatcher",
	Admin:      "admin",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// Validate rejects values outside the closed set.
func (r Role) Validate() error {
	if _, ok := roleNames[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// Roles is an immutable set of roles.
type Roles struct {
	set map[Role]struct{}
}

// NewRoles builds a set, rejecting unknown roles.
func NewRoles(roles ...Role) (Roles, error) {
	set := make(map[Role]struct{}, len(roles))
	for _, r := range roles {
		if err := r.Validate(); err != nil {
			return Roles{}, err
		}
		set[r] = struct{}{}
	}
	return Roles{set: set}, nil
}

// Has reports whether r is in the set.
func (rs Roles) Has(r Role) bool {
	_, ok := rs.set[r]
	return ok
}

// With returns a copy of the set that also contains r.
func (rs Roles) With(r Role) Roles {
	out := rs.clone()
	out.set[r] = struct{}{}
	return out
}

// Without returns a copy of the set that does not contain r.
func (rs Roles) Without(r Role) Roles {
	out := rs.clone()
	delete(out.set, r)
	return out
}

// List returns the roles in declaration order.
func (rs Roles) List() []Role {
	out := make([]Role, 0, len(rs.set))
	for r := range rs.set {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (rs Roles) clone() Roles {
	set := make(map[Role]struct{}, len(rs.set)+1)
	for r := range rs.set {
		set[r] = struct{}{}
	}
	return Roles{set: set}
}

// User is the identity the service authorizes against. Authentication itself
// happens upstream; the service only knows the id, a username and the roles.
type User struct {
	id       kernel.UUID
	username string
	roles    Roles

	guard guard.ConstructorGuard
}

// NewUser creates a user. Username is required and at most 150 characters.
func NewUser(id kernel.UUID, username string, roles Roles) (*User, error) {
	u := &User{
		roles: roles.clone(),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setUsername(username),
	); err != nil {
		return nil, err
	}

	return u, nil
}

func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) ID() kernel.UUID {
	return u.id
}

func (u *User) Username() string {
	return u.username
}

func (u *User) Roles() Roles {
	return u.roles.clone()
}

func (u *User) Has(r Role) bool {
	return u.roles.Has(r)
}

// SetDispatcher grants or revokes the Dispatcher role.
func (u *User) SetDispatcher(enabled bool) {
	if enabled {
		u.roles = u.roles.With(Dispatcher)
		return
	}
	u.roles = u.roles.Without(Dispatcher)
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errs.NewValueIsRequiredError("username")
	}
	if n := utf8.RuneCountInString(username); n > UsernameMaxLength {
		return errs.NewValueIsOutOfRangeError("username length", n, 1, UsernameMaxLength)
	}
	u.username = username
	return nil
}
