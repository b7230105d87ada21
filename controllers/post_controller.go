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

type PostController struct {
	postService *services.PostService
	pageSize    int
}

func NewPostController(db *gorm.DB, pageSize int) *PostController {
	return &PostController{
		postService: services.NewPostService(db),
		pageSize:    pageSize,
	}
}

// GetPosts godoc
// @Summary List posts
// @Tags posts
// @Param page query int false "page number"
// @Success 200 {object} utils.PaginatedResponse
// @Router /posts/ [get]
func (pc *PostController) GetPosts(c *gin.Context) {
	page, ok := getPage(c, pc.pageSize)
	if !ok {
		return
	}

	result, err := pc.postService.GetPosts(c.Request.Context(), page)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.Paginate(c, result.Page, result.Count, result.Items))
}

// GetPost godoc
// @Summary Get a post with its comments
// @Tags posts
// @Param id path int true "post id"
// @Success 200 {object} models.PostResponse
// @Router /posts/{id}/ [get]
func (pc *PostController) GetPost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	post, err := pc.postService.GetPostByID(c.Request.Context(), id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, post.Response())
}

// CreatePost godoc
// @Summary Create a post owned by the caller
// @Tags posts
// @Security BearerAuth
// @Param post body models.PostRequest true "post"
// @Success 201 {object} models.PostResponse
// @Router /posts/ [post]
func (pc *PostController) CreatePost(c *gin.Context) {
	caller := callerID(c)

	var req models.PostRequest
	if !bindBody(c, caller, &req) {
		return
	}

	post, err := pc.postService.CreatePost(c.Request.Context(), caller, &req)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, post.Response())
}

// UpdatePost handles both PUT (full) and PATCH (partial).
func (pc *PostController) UpdatePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	caller := callerID(c)

	var req models.PostRequest
	if !bindBody(c, caller, &req) {
		return
	}

	partial := c.Request.Method == http.MethodPatch
	post, err := pc.postService.UpdatePost(c.Request.Context(), caller, id, &req, partial)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, post.Response())
}

func (pc *PostController) DeletePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := pc.postService.DeletePost(c.Request.Context(), callerID(c), id); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (pc *PostController) PublishPost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	published, err := pc.postService.PublishPost(c.Request.Context(), callerID(c), id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "post published", "published": published})
}

func (pc *PostController) UnpublishPost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	published, err := pc.postService.UnpublishPost(c.Request.Context(), callerID(c), id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "post unpublished", "published": published})
}
