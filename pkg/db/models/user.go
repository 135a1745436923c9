package models

import "time"

// User is an account that can own favorites. Favorites reference the user by
// id; the user row does not hold them.
type User struct {
	ID               uint       `gorm:"column:id;primaryKey"`
	Email            string     `gorm:"column:email;type:varchar(120);not null;uniqueIndex:users_email_key"`
	Password         string     `gorm:"column:password;not null"`
	FirstName        string     `gorm:"column:first_name;type:varchar(50);not null"`
	LastName         string     `gorm:"column:last_name;type:varchar(50);not null"`
	SubscriptionDate *time.Time `gorm:"column:subscription_date"`
	IsActive         bool       `gorm:"column:is_active;not null"`
}

func (User) TableName() string {
	return "users"
}
