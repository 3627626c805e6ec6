package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"constellation/internal/models/request_models"
	"constellation/internal/services"
	"constellation/pkg/utils"
)

type SocialController struct {
	socialService services.SocialPostService
}

func NewSocialController(socialService services.SocialPostService) *SocialController {
	return &SocialController{
		socialService: socialService,
	}
}

// Create godoc
// @Summary Create a social post (draft or scheduled)
// @Tags Social
// @Accept json
// @Produce json
// @Param request body request_models.CreateSocialPostRequest true "Post payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/social/posts [post]
func (s *SocialController) Create(c *gin.Context) {
	var req request_models.CreateSocialPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := s.socialService.Create(c.Request.Context(), c.GetString("user_id"), &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Post created")
}

// List godoc
// @Summary Posts of the authenticated owner
// @Tags Social
// @Produce json
// @Param status query string false "Filter by status"
// @Param platform query string false "Filter by platform"
// @Param campaign query string false "Filter by campaign"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/social/posts [get]
func (s *SocialController) List(c *gin.Context) {
	var q request_models.ListSocialPostsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	resp, err := s.socialService.List(c.Request.Context(), c.GetString("user_id"), &q)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Posts fetched")
}

// Update godoc
// @Summary Update an unpublished post
// @Tags Social
// @Accept json
// @Produce json
// @Param id path string true "Post id"
// @Param request body request_models.UpdateSocialPostRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/social/posts/{id} [put]
func (s *SocialController) Update(c *gin.Context) {
	var req request_models.UpdateSocialPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := s.socialService.Update(c.Request.Context(), c.GetString("user_id"), c.Param("id"), &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Post updated")
}

// Delete godoc
// @Summary Delete an unpublished post
// @Tags Social
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/social/posts/{id} [delete]
func (s *SocialController) Delete(c *gin.Context) {
	if err := s.socialService.Delete(c.Request.Context(), c.GetString("user_id"), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Post deleted")
}

// Schedule godoc
// @Summary Confirm a post is queued for publishing
// @Tags Social
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/social/posts/{id}/schedule [post]
func (s *SocialController) Schedule(c *gin.Context) {
	resp, err := s.socialService.Schedule(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Post queued")
}

// Stats godoc
// @Summary Publishing counters for the authenticated owner
// @Tags Social
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /api/social/publish-status [get]
func (s *SocialController) Stats(c *gin.Context) {
	resp, err := s.socialService.Stats(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Publishing stats fetched")
}
