package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-backend/models"
	"rental-backend/services"
	"rental-backend/utils"
)

type PropertyController struct {
	Properties *services.PropertyService
	Reconciler *services.ReconcileService
}

func NewPropertyController(properties *services.PropertyService, reconciler *services.ReconcileService) *PropertyController {
	return &PropertyController{Properties: properties, Reconciler: reconciler}
}

// GET /api/properties
func (pc *PropertyController) GetProperties(c *gin.Context) {
	properties, err := pc.Properties.GetAll()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, properties)
}

// GET /api/properties/:id
func (pc *PropertyController) GetPropertyByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	property, err := pc.Properties.GetByID(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, property)
}

// POST /api/properties
func (pc *PropertyController) CreateProperty(c *gin.Context) {
	var property models.Property
	if err := c.ShouldBindJSON(&property); err != nil {
		utils.JSONError(c, http.StatusBadRequest, services.CodeInvalidInput, "invalid request payload")
		return
	}
	if err := pc.Properties.Create(&property); err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, property)
}

// POST /api/properties/:id/reconcile
func (pc *PropertyController) Reconcile(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := pc.Reconciler.Reconcile(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}
