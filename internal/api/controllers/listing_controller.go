package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"constellation/internal/models/request_models"
	"constellation/internal/services"
	"constellation/pkg/utils"
)

type ListingController struct {
	listingService services.ListingService
}

func NewListingController(listingService services.ListingService) *ListingController {
	return &ListingController{
		listingService: listingService,
	}
}

// Create godoc
// @Summary Create a listing
// @Tags Listings
// @Accept json
// @Produce json
// @Param request body request_models.CreateListingRequest true "Listing payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /listings [post]
func (l *ListingController) Create(c *gin.Context) {
	var req request_models.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := l.listingService.Create(c.Request.Context(), c.GetString("user_id"), &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Listing created")
}

// List godoc
// @Summary Listings of the authenticated owner
// @Tags Listings
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /listings [get]
func (l *ListingController) List(c *gin.Context) {
	resp, err := l.listingService.ListByOwner(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Listings fetched")
}

// GetById godoc
// @Summary Fetch one listing
// @Tags Listings
// @Produce json
// @Param id path string true "Listing id"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /listings/{id} [get]
func (l *ListingController) GetById(c *gin.Context) {
	resp, err := l.listingService.GetById(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Listing fetched")
}

// Update godoc
// @Summary Update a listing
// @Tags Listings
// @Accept json
// @Produce json
// @Param id path string true "Listing id"
// @Param request body request_models.UpdateListingRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /listings/{id} [put]
func (l *ListingController) Update(c *gin.Context) {
	var req request_models.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := l.listingService.Update(c.Request.Context(), c.GetString("user_id"), c.Param("id"), &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Listing updated")
}

// Delete godoc
// @Summary Delete a listing
// @Tags Listings
// @Produce json
// @Param id path string true "Listing id"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /listings/{id} [delete]
func (l *ListingController) Delete(c *gin.Context) {
	if err := l.listingService.Delete(c.Request.Context(), c.GetString("user_id"), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Listing deleted")
}
