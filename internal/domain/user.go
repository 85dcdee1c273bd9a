package domain

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:text;uniqueIndex:ux_users_username;not null" json:"username"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	Email     string    `gorm:"type:text;uniqueIndex:ux_users_email;not null" json:"email"`
	Activated bool      `gorm:"not null;default:false" json:"activated"`
	CreatedAt time.Time `gorm:"not null" json:"-"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`
}

func (User) TableName() string { return "users" }

// Confirmation is the time-limited proof-of-registration record emailed to a
// user. An expired, unconfirmed record is superseded by a new one; records are
// never reused.
type Confirmation struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null;constraint:OnDelete:CASCADE" json:"user_id"`
	ExpireAt  time.Time `gorm:"not null" json:"expire_at"`
	Confirmed bool      `gorm:"not null;default:false" json:"confirmed"`
	CreatedAt time.Time `gorm:"not null" json:"-"`
}

func (Confirmation) TableName() string { return "confirmations" }

func (c *Confirmation) Expired(now time.Time) bool {
	return now.After(c.ExpireAt)
}
