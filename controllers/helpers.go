package controllers

import (
	"strconv"

	apierrors "myapp/errors"
	"myapp/middleware"
	"myapp/services"
	"myapp/utils"

	"github.com/gin-gonic/gin"
)

// parseID reads the :id path parameter. Anything that is not a positive integer
// cannot name a row, so it answers 404 like a missing one.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		apierrors.Respond(c, apierrors.ErrNotFound)
		return 0, false
	}
	return uint(id), true
}

func callerID(c *gin.Context) uint {
	if id, ok := middleware.CurrentUserID(c); ok {
		return id
	}
	return services.Anonymous
}

func getPage(c *gin.Context, size int) (utils.Page, bool) {
	page, ok := utils.GetPage(c, size)
	if !ok {
		apierrors.Respond(c, apierrors.ErrInvalidPage)
		return page, false
	}
	return page, true
}

// bindBody decodes the JSON body. Anonymous callers are let through with an empty
// body so the service answers 401 before any validation error.
func bindBody(c *gin.Context, caller uint, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil && caller != services.Anonymous {
		apierrors.BadRequest(c, "Invalid request body: "+err.Error())
		return false
	}
	return true
}
