package control

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Viper373/prompt-shelf/internal/models"
	"github.com/Viper373/prompt-shelf/internal/services"
	"github.com/Viper373/prompt-shelf/internal/settings"
	"github.com/Viper373/prompt-shelf/internal/utils"
)

// AllowRegister flips the runtime registration toggle.
func AllowRegister(rt *settings.Runtime) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AllowRegisterRequest
		if !utils.BindAndValidate(c, &req) {
			return
		}
		rt.SetAllowRegister(*req.EnableRegister)
		c.JSON(http.StatusOK, utils.NewSuccessResponse("Registration flag updated", nil))
	}
}

// ListUsers returns every account.
func ListUsers(c *gin.Context) {
	users, err := services.FindUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Query users finished", users))
}

// AddUser creates an account with an explicit role.
func AddUser(c *gin.Context) {
	var req AddUserRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	user, err := services.AddUser(req.Username, req.Email, req.Password, req.Role, req.Valid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("User has been added", user))
}

func userIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid user id"))
		return 0, false
	}
	return uint(id), true
}

// UpdateUser partially updates an account. The password is rehashed when set.
func UpdateUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	err := services.UpdateUser(id, services.UpdateUserFields{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Valid:    req.Valid,
	})
	if err != nil {
		if err == services.ErrUserNotFound {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("User updated", nil))
}

// DisableUser enables or disables an account.
func DisableUser(c *gin.Context) {
	var req DisableUserRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := services.SetUserValid(req.UserID, !req.Disable); err != nil {
		if err == services.ErrUserNotFound {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("User status has been changed", nil))
}

// DeleteUser removes an account.
func DeleteUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	if err := services.DeleteUser(id); err != nil {
		if err == services.ErrUserNotFound {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse(fmt.Sprintf("User %d has been deleted", id), nil))
}

// CreateOrg creates an organization owned by the calling admin.
func CreateOrg(c *gin.Context) {
	var req CreateOrgRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	admin := c.MustGet("user").(models.User)
	org, err := services.CreateOrganization(req.Name, req.Description, admin.ID)
	if err != nil {
		if err == services.ErrOrganizationExists {
			c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Organization created", org))
}

// AddOrgMember adds a user to an organization.
func AddOrgMember(c *gin.Context) {
	var req AddOrgMemberRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := services.AddOrganizationMember(req.UserID, req.OrgID); err != nil {
		if err == services.ErrUserNotFound {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Member added", nil))
}
