package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Viper373/prompt-shelf/internal/services"
	"github.com/Viper373/prompt-shelf/internal/settings"
	"github.com/Viper373/prompt-shelf/internal/utils"
)

// Signup registers a new user. Registration can be switched off at runtime;
// the first account ever created becomes the admin.
func Signup(rt *settings.Runtime) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rt.AllowRegister() {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Registration is disabled"))
			return
		}

		var req SignupRequest
		if !utils.BindAndValidate(c, &req) {
			return
		}

		user, err := services.RegisterUser(req.Username, req.Email, req.Password)
		if err != nil {
			if err == services.ErrUserAlreadyExists {
				c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
				return
			}
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
			return
		}

		token, err := utils.GenerateToken(user.ID, user.Role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to generate token"))
			return
		}

		c.JSON(http.StatusOK, utils.NewSuccessResponse("User sign up succeed", AuthResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
			Token:    token,
		}))
	}
}

// Signin authenticates by email and password.
func Signin(c *gin.Context) {
	var req SigninRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	token, user, err := services.LoginUser(req.Email, req.Password)
	if err != nil {
		if err == services.ErrInvalidCredentials {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("User login successfully", AuthResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		Token:    token,
	}))
}

// AllowRegisterStatus reports whether registration is currently open.
func AllowRegisterStatus(rt *settings.Runtime) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.NewSuccessResponse("Query allow_register succeed", RegisterFlagResponse{
			AllowRegister: rt.AllowRegister(),
		}))
	}
}

// Signout revokes the current token until it would have expired anyway.
func Signout(c *gin.Context) {
	tokenString, err := utils.ExtractToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, err.Error()))
		return
	}

	claims, err := utils.ValidateToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Invalid or expired token"))
		return
	}

	expiration := time.Hour
	if exp, ok := claims["exp"].(float64); ok {
		if remaining := time.Until(time.Unix(int64(exp), 0)); remaining > 0 {
			expiration = remaining
		}
	}

	if err := services.AddToDenylist(tokenString, expiration); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to revoke token"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("User signed out", nil))
}
