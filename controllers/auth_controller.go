package controllers

import (
	"log"
	"net/http"
	"time"

	apierrors "myapp/errors"
	"myapp/models"
	"myapp/services"
	"myapp/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthController struct {
	userService *services.UserService
	secret      string
	ttl         time.Duration
}

func NewAuthController(db *gorm.DB, secret string, ttl time.Duration) *AuthController {
	return &AuthController{
		userService: services.NewUserService(db),
		secret:      secret,
		ttl:         ttl,
	}
}

func (ac *AuthController) Register(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	user, err := ac.userService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	token, err := utils.GenerateJWT(ac.secret, user.ID, ac.ttl)
	if err != nil {
		log.Printf("Failed to generate token for user %d: %v", user.ID, err)
		apierrors.Respond(c, apierrors.ErrInternalError)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"data":    user.Response(),
		"token":   token,
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	user, err := ac.userService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if apierrors.Is(err, apierrors.ErrCodeNotFound) {
			apierrors.Respond(c, apierrors.NewAPIError(http.StatusUnauthorized, apierrors.ErrCodeUnauthorized, "Invalid credentials"))
			return
		}
		apierrors.Respond(c, err)
		return
	}

	token, err := utils.GenerateJWT(ac.secret, user.ID, ac.ttl)
	if err != nil {
		log.Printf("Failed to generate token for user %d: %v", user.ID, err)
		apierrors.Respond(c, apierrors.ErrInternalError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data":    user.Response(),
		"token":   token,
	})
}

func (ac *AuthController) Me(c *gin.Context) {
	userID := callerID(c)
	if userID == services.Anonymous {
		apierrors.Respond(c, apierrors.ErrUnauthenticated)
		return
	}

	user, err := ac.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user.Response()})
}
