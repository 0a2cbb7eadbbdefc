package entity

import "time"

// Reminder is a scheduled note owned by exactly one user. RemindAt is the absolute
// instant its notification email must go out.
type Reminder struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	Title       string    `gorm:"column:title;size:255;not null"`
	Description string    `gorm:"column:description;size:4096;not null"`
	RemindAt    time.Time `gorm:"column:remind_at;not null;index"`
	UserID      uint      `gorm:"column:user_id;not null;index"`
}

// TableName specifies the table name for the Reminder entity.
func (Reminder) TableName() string {
	return "reminders"
}
