package users

import (
	"time"

	"github.com/angelmondragon/favorites-catalog/pkg/db/models"
	"github.com/angelmondragon/favorites-catalog/pkg/validators"
)

// UserDTO is the transport shape that omits credentials. Favorites are
// served separately by the favorites service.
type UserDTO struct {
	ID               uint    `json:"id"`
	Email            string  `json:"email"`
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	SubscriptionDate *string `json:"subscription_date"`
	IsActive         bool    `json:"is_active"`
}

// CreateUserDTO holds the data required to persist a new user. Password is
// the plaintext credential; the service hashes it before it reaches the repo.
type CreateUserDTO struct {
	Email            string     `json:"email" validate:"required,max=120"`
	Password         string     `json:"password" validate:"required"`
	FirstName        string     `json:"first_name" validate:"required,max=50"`
	LastName         string     `json:"last_name" validate:"required,max=50"`
	SubscriptionDate *time.Time `json:"subscription_date"`
	IsActive         *bool      `json:"is_active"`
}

// UpdateUserDTO carries a partial update. Nil fields stay untouched.
type UpdateUserDTO struct {
	Email            *string    `json:"email" validate:"omitnil,min=1,max=120"`
	Password         *string    `json:"password" validate:"omitnil,min=1"`
	FirstName        *string    `json:"first_name" validate:"omitnil,min=1,max=50"`
	LastName         *string    `json:"last_name" validate:"omitnil,min=1,max=50"`
	SubscriptionDate *time.Time `json:"subscription_date"`
	IsActive         *bool      `json:"is_active"`
	Unset            []string   `json:"unset" validate:"dive,oneof=subscription_date"`
}

// FromModel serializes a user without its password hash. The subscription
// date renders in UTC with sub-second precision kept. A nil user serializes
// to nil.
func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:               u.ID,
		Email:            u.Email,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		SubscriptionDate: formatTimestamp(u.SubscriptionDate),
		IsActive:         u.IsActive,
	}
}

// ToModel applies the column defaults: subscribed now, active.
func (c CreateUserDTO) ToModel() *models.User {
	isActive := true
	if c.IsActive != nil {
		isActive = *c.IsActive
	}

	subscribed := time.Now().UTC()
	if c.SubscriptionDate != nil {
		subscribed = c.SubscriptionDate.UTC()
	}

	return &models.User{
		Email:            c.Email,
		Password:         c.Password,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		SubscriptionDate: &subscribed,
		IsActive:         isActive,
	}
}

func (u UpdateUserDTO) assignments() map[string]any {
	changes := map[string]any{}
	if u.Email != nil {
		changes["email"] = *u.Email
	}
	if u.Password != nil {
		changes["password"] = *u.Password
	}
	if u.FirstName != nil {
		changes["first_name"] = *u.FirstName
	}
	if u.LastName != nil {
		changes["last_name"] = *u.LastName
	}
	if u.SubscriptionDate != nil {
		changes["subscription_date"] = u.SubscriptionDate.UTC()
	}
	if u.IsActive != nil {
		changes["is_active"] = *u.IsActive
	}
	return changes
}

// Changes returns the column assignments the update implies, with every
// column in Unset mapped to NULL.
func (u UpdateUserDTO) Changes() map[string]any {
	changes := u.assignments()
	for _, column := range u.Unset {
		changes[column] = nil
	}
	return changes
}

// Validate rejects a column that is both assigned and listed in Unset.
func (u UpdateUserDTO) Validate() error {
	return validators.UnsetConflicts(u.assignments(), u.Unset)
}

func formatTimestamp(ts *time.Time) *string {
	if ts == nil {
		return nil
	}
	formatted := ts.UTC().Format(time.RFC3339Nano)
	return &formatted
}
