package models

import "time"

// Generation is one recorded image generation: what was asked for, where
// the request went, and where the result landed on disk.
type Generation struct {
	ID         uint   `gorm:"primaryKey"`
	RequestID  string `gorm:"size:36;index"`
	Prompt     string `gorm:"type:text;not null"`
	Model      string `gorm:"size:255;not null"`
	ProjectID  string `gorm:"size:255;not null"`
	Location   string `gorm:"size:64"`
	OutputPath string `gorm:"size:1024"`
	MIMEType   string `gorm:"size:64"`
	ByteSize   int64
	CreatedAt  time.Time
}
