package model

import "time"

// Role classifies a user's position in the review hierarchy.
type Role string

const (
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// User represents a registered user. ManagerID points at the user's
// direct manager; team membership is exactly one level deep.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Name         string    `json:"name" gorm:"size:255;not null"`
	Role         Role      `json:"role" gorm:"type:varchar(20);not null;index"`
	ManagerID    *uint     `json:"manager_id,omitempty" gorm:"index"`
	CreatedAt    time.Time `json:"created_at"`

	Manager *User `json:"-" gorm:"foreignKey:ManagerID"`
}

// TableName sets the table name for GORM.
func (User) TableName() string {
	return "users"
}
