package models

import "time"

type Organization struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	AdminID     uint      `gorm:"not null" json:"admin_id"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserOrganization maps users into organizations (many-to-many).
type UserOrganization struct {
	UserID uint `gorm:"primaryKey" json:"user_id"`
	OrgID  uint `gorm:"primaryKey;index" json:"org_id"`
}
