package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Viper373/prompt-shelf/internal/database"
	"github.com/Viper373/prompt-shelf/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

const userCacheDuration = time.Hour

func FindUserByID(userID uint) (models.User, error) {
	// Try cache
	cacheKey := fmt.Sprintf("user:%d", userID)
	if database.RedisClient != nil {
		val, err := database.RedisClient.Get(database.Ctx, cacheKey).Result()
		if err == nil {
			var user models.User
			if err := json.Unmarshal([]byte(val), &user); err == nil {
				return user, nil
			}
		}
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, ErrUserNotFound
		}
		return user, err
	}

	// Set cache
	if database.RedisClient != nil {
		if data, err := json.Marshal(user); err == nil {
			database.RedisClient.Set(database.Ctx, cacheKey, data, userCacheDuration)
		}
	}

	return user, nil
}

func dropUserCache(userID uint) {
	if database.RedisClient != nil {
		database.RedisClient.Del(database.Ctx, fmt.Sprintf("user:%d", userID))
	}
}

// FindUsers retrieves all users.
func FindUsers() ([]models.User, error) {
	var users []models.User
	if err := database.DB.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// AddUser creates a user with explicit role and validity (admin operation).
func AddUser(username, email, password, role string, valid bool) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
		Valid:    valid,
	}
	if err := database.DB.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUserFields holds the optional fields of a partial user update. Nil
// fields are left unchanged.
type UpdateUserFields struct {
	Username *string
	Email    *string
	Password *string
	Role     *string
	Valid    *bool
}

func UpdateUser(userID uint, fields UpdateUserFields) error {
	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	updates := map[string]interface{}{}
	if fields.Username != nil {
		updates["username"] = *fields.Username
	}
	if fields.Email != nil {
		updates["email"] = *fields.Email
	}
	if fields.Role != nil {
		updates["role"] = *fields.Role
	}
	if fields.Valid != nil {
		updates["valid"] = *fields.Valid
	}
	if fields.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*fields.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		updates["password"] = string(hashedPassword)
	}
	if len(updates) == 0 {
		return nil
	}

	if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
		return err
	}
	dropUserCache(userID)
	return nil
}

// SetUserValid enables or disables an account.
func SetUserValid(userID uint, valid bool) error {
	result := database.DB.Model(&models.User{}).Where("id = ?", userID).Update("valid", valid)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	dropUserCache(userID)
	return nil
}

func DeleteUser(userID uint) error {
	result := database.DB.Delete(&models.User{}, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	dropUserCache(userID)
	return nil
}
