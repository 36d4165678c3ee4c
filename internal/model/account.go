package model

import "time"

// Account is a registered customer. Rows live in the clientes table.
type Account struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string    `json:"name" gorm:"size:255"`
	Email        string    `json:"email" gorm:"size:255;index"`
	Phone        string    `json:"phone" gorm:"size:50"`
	Address      string    `json:"address" gorm:"size:255"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Salt         string    `json:"-" gorm:"size:255;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName keeps the table name used by the existing database.
func (Account) TableName() string {
	return "clientes"
}
