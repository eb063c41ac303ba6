package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Viper373/prompt-shelf/internal/database"
	"github.com/Viper373/prompt-shelf/internal/models"
)

var ErrOrganizationExists = errors.New("organization with this name already exists")

func CreateOrganization(name, description string, adminID uint) (*models.Organization, error) {
	var existing models.Organization
	if err := database.DB.Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, ErrOrganizationExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	org := &models.Organization{
		Name:        name,
		AdminID:     adminID,
		Description: description,
	}
	if err := database.DB.Create(org).Error; err != nil {
		return nil, err
	}

	// The admin is always a member of their own organization.
	member := &models.UserOrganization{UserID: adminID, OrgID: org.ID}
	if err := database.DB.Create(member).Error; err != nil {
		return nil, err
	}
	return org, nil
}

func AddOrganizationMember(userID, orgID uint) error {
	if _, err := FindUserByID(userID); err != nil {
		return err
	}
	var org models.Organization
	if err := database.DB.First(&org, orgID).Error; err != nil {
		return err
	}
	member := &models.UserOrganization{UserID: userID, OrgID: orgID}
	return database.DB.FirstOrCreate(member, *member).Error
}
