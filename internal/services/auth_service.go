package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Viper373/prompt-shelf/internal/database"
	"github.com/Viper373/prompt-shelf/internal/models"
	"github.com/Viper373/prompt-shelf/internal/utils"
)

var (
	ErrUserAlreadyExists  = errors.New("user with this username or email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// RegisterUser creates a new account. The very first registered user becomes
// the admin.
func RegisterUser(username, email, password string) (*models.User, error) {
	var existing models.User
	result := database.DB.Where("username = ? OR email = ?", username, email).First(&existing)
	if result.Error == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var userCount int64
	database.DB.Model(&models.User{}).Count(&userCount)

	role := "user"
	if userCount == 0 {
		role = "admin"
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
		Valid:    true,
	}

	if err := database.DB.Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// LoginUser verifies credentials by email and returns a signed token.
// Disabled accounts cannot sign in.
func LoginUser(email, password string) (string, *models.User, error) {
	var user models.User
	err := database.DB.Where("email = ? AND valid = ?", email, true).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}

	return token, &user, nil
}
