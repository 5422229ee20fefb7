package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Kariqs/amexan-store/models"
	"github.com/Kariqs/amexan-store/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

func (h *Handler) checkUserExists(email, username string) (bool, error) {
	var existingUser models.User
	result := h.DB.Where("email = ? OR username = ?", email, username).Limit(1).Find(&existingUser)
	return result.RowsAffected > 0, result.Error
}

// Signup handles user registration
func (h *Handler) Signup(ctx *gin.Context) {
	var signUpData models.SignupData
	if err := ctx.ShouldBindJSON(&signUpData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	signUpData.Email = strings.ToLower(strings.TrimSpace(signUpData.Email))

	exists, err := h.checkUserExists(signUpData.Email, signUpData.Username)
	if err != nil {
		log.Println("Database error during user check:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if exists {
		sendErrorResponse(ctx, http.StatusBadRequest, msgUserAlreadyExists)
		return
	}

	hashedPassword, err := utils.HashPassword(signUpData.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	user := models.User{
		Username: signUpData.Username,
		Email:    signUpData.Email,
		Phone:    signUpData.Phone,
		Address:  signUpData.Address,
		Password: hashedPassword,
		Role:     "user",
	}
	if err := h.DB.WithContext(ctx.Request.Context()).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			sendErrorResponse(ctx, http.StatusBadRequest, msgUserAlreadyExists)
			return
		}
		log.Println("User creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": msgUserCreated, "id": user.ID})
}

// Login handles user authentication
func (h *Handler) Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var user models.User
	email := strings.ToLower(strings.TrimSpace(loginData.Email))
	if err := h.DB.Where("email = ?", email).First(&user).Error; err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	if err := utils.ComparePasswords(user.Password, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	tokenString, err := utils.GenerateJWT(user, h.JWTSecret)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"token": tokenString})
}

// currentUser loads the account behind the token set by RequireAuth.
func (h *Handler) currentUser(ctx *gin.Context) (*models.User, error) {
	userClaims, _ := ctx.Get("user")
	claims, _ := userClaims.(jwt.MapClaims)
	id, ok := utils.UserID(claims)
	if !ok {
		return nil, errors.New("no user in request context")
	}

	var user models.User
	if err := h.DB.WithContext(ctx.Request.Context()).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
