package controllers

import (
	"net/http"

	apierrors "myapp/errors"
	"myapp/models"
	"myapp/services"
	"myapp/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserController exposes users read-only; accounts are created through /api/auth/register/.
type UserController struct {
	userService *services.UserService
	pageSize    int
}

func NewUserController(db *gorm.DB, pageSize int) *UserController {
	return &UserController{
		userService: services.NewUserService(db),
		pageSize:    pageSize,
	}
}

func (uc *UserController) GetUsers(c *gin.Context) {
	page, ok := getPage(c, uc.pageSize)
	if !ok {
		return
	}

	result, err := uc.userService.GetAllUsers(c.Request.Context(), page)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	users := make([]models.UserResponse, 0, len(result.Items))
	for i := range result.Items {
		users = append(users, result.Items[i].Response())
	}
	c.JSON(http.StatusOK, utils.Paginate(c, result.Page, result.Count, users))
}

func (uc *UserController) GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := uc.userService.GetUserByID(c.Request.Context(), id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, user.Response())
}
