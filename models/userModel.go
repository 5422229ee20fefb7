package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Username string `json:"username" gorm:"uniqueIndex;size:100"`
	Email    string `json:"email" gorm:"uniqueIndex;size:191"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Password string `json:"-"`
	Role     string `json:"role"`
}

type SignupData struct {
	Username string `json:"username" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=191"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone" binding:"max=100"`
	Address  string `json:"address" binding:"max=1000"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
