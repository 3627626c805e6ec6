package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"constellation/internal/models/request_models"
	"constellation/internal/services"
)

// PersonalController keeps the original serverless contract of the
// /api/personal endpoints: raw row JSON on success, {"error": string}
// otherwise, no response envelope. Expenses and income share handlers.
type PersonalController struct {
	expenses services.PersonalService
	income   services.PersonalService
}

func NewPersonalController(expenses, income services.PersonalService) *PersonalController {
	return &PersonalController{
		expenses: expenses,
		income:   income,
	}
}

func (p *PersonalController) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/expenses", p.list(p.expenses))
	group.POST("/expenses", p.create(p.expenses))
	group.PUT("/expenses", p.update(p.expenses))
	group.DELETE("/expenses", p.delete(p.expenses))

	group.GET("/income", p.list(p.income))
	group.POST("/income", p.create(p.income))
	group.PUT("/income", p.update(p.income))
	group.DELETE("/income", p.delete(p.income))
}

func (p *PersonalController) list(svc services.PersonalService) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := svc.List(c.Request.Context(), c.GetString("user_id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

func (p *PersonalController) create(svc services.PersonalService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req request_models.PersonalEntryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		row, err := svc.Create(c.Request.Context(), c.GetString("user_id"), &req)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, row)
	}
}

func (p *PersonalController) update(svc services.PersonalService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req request_models.PersonalEntryUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		row, err := svc.Update(c.Request.Context(), c.GetString("user_id"), &req)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, row)
	}
}

func (p *PersonalController) delete(svc services.PersonalService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Query("id")
		if id == "" {
			var req request_models.PersonalEntryRequest
			if c.ShouldBindJSON(&req) == nil {
				id = req.ID
			}
		}
		if id == "" {
			// The only 400 these endpoints ever return.
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID is required"})
			return
		}

		if err := svc.Delete(c.Request.Context(), c.GetString("user_id"), id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
