package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shoppingapp-backend/internal/services"
	"shoppingapp-backend/internal/utils"
)

// Register godoc
// @Summary Register a device account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Credentials"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /auth/register [post]
func Register(c *gin.Context) {
	var req CredentialsRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	user, err := services.RegisterUser(req.Username, req.Password)
	if err != nil {
		if err == services.ErrUserAlreadyExists {
			c.JSON(http.StatusConflict, utils.NewErrorResponse(http.StatusConflict, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Registered successfully", gin.H{
		"id":       user.ID,
		"username": user.Username,
	}))
}

// Login godoc
// @Summary Log in and receive a token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Credentials"
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Router /auth/login [post]
func Login(c *gin.Context) {
	var req CredentialsRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	token, user, err := services.LoginUser(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Invalid credentials"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Logged in successfully", gin.H{
		"token":    token,
		"username": user.Username,
	}))
}

// Logout godoc
// @Summary Revoke the current token
// @Tags auth
// @Produce json
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Router /auth/logout [post]
func Logout(c *gin.Context) {
	tokenString, err := utils.ExtractToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, err.Error()))
		return
	}

	if err := services.AddToDenylist(tokenString, 72*time.Hour); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to revoke token"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Logged out successfully", nil))
}
