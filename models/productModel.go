package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required" gorm:"type:decimal(10,2);not null"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	ImageUrl    string          `json:"imageUrl"`
}
