package models

import "time"

// PromptRecord is the relational pointer for one prompt document. FileKey is
// the document id under the data directory; LatestVersion/LatestCommit track
// which commit is currently "latest". Both are empty until the first commit
// is marked as latest.
type PromptRecord struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	FileKey       string    `gorm:"size:100;not null;index" json:"file_key"`
	UserID        uint      `gorm:"index" json:"user_id"`
	OrgID         uint      `json:"org_id"`
	LatestVersion string    `gorm:"size:32" json:"latest_version"`
	LatestCommit  string    `gorm:"size:64" json:"latest_commit"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
