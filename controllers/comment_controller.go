package controllers

import (
	"net/http"
	"strconv"

	apierrors "myapp/errors"
	"myapp/models"
	"myapp/services"
	"myapp/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommentController struct {
	commentService *services.CommentService
	pageSize       int
}

func NewCommentController(db *gorm.DB, pageSize int) *CommentController {
	return &CommentController{
		commentService: services.NewCommentService(db),
		pageSize:       pageSize,
	}
}

// GetComments lists comments newest first; ?post=<id> narrows to one post.
func (cc *CommentController) GetComments(c *gin.Context) {
	page, ok := getPage(c, cc.pageSize)
	if !ok {
		return
	}

	var postID *uint
	if raw, ok := c.GetQuery("post"); ok && raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			apierrors.Respond(c, apierrors.Validation("post", "A valid integer is required."))
			return
		}
		v := uint(id)
		postID = &v
	}

	result, err := cc.commentService.GetComments(c.Request.Context(), page, postID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	items := make([]models.CommentResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, result.Items[i].Response())
	}
	c.JSON(http.StatusOK, utils.Paginate(c, result.Page, result.Count, items))
}

func (cc *CommentController) GetComment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	comment, err := cc.commentService.GetCommentByID(c.Request.Context(), id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, comment.Response())
}

func (cc *CommentController) CreateComment(c *gin.Context) {
	caller := callerID(c)

	var req models.CommentRequest
	if !bindBody(c, caller, &req) {
		return
	}

	comment, err := cc.commentService.CreateComment(c.Request.Context(), caller, &req)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment.Response())
}

func (cc *CommentController) UpdateComment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	caller := callerID(c)

	var req models.CommentRequest
	if !bindBody(c, caller, &req) {
		return
	}

	partial := c.Request.Method == http.MethodPatch
	comment, err := cc.commentService.UpdateComment(c.Request.Context(), caller, id, &req, partial)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, comment.Response())
}

func (cc *CommentController) DeleteComment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := cc.commentService.DeleteComment(c.Request.Context(), callerID(c), id); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
