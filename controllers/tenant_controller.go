package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-backend/models"
	"rental-backend/services"
	"rental-backend/utils"
)

type TenantController struct {
	Tenants *services.TenantService
	Moves   *services.MoveService
}

func NewTenantController(tenants *services.TenantService, moves *services.MoveService) *TenantController {
	return &TenantController{Tenants: tenants, Moves: moves}
}

// GET /api/tenants
func (tc *TenantController) GetTenants(c *gin.Context) {
	tenants, err := tc.Tenants.GetAll()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, tenants)
}

// GET /api/tenants/:id
func (tc *TenantController) GetTenantByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	tenant, err := tc.Tenants.GetByID(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, tenant)
}

// POST /api/tenants
func (tc *TenantController) CreateTenant(c *gin.Context) {
	var tenant models.Tenant
	if err := c.ShouldBindJSON(&tenant); err != nil {
		utils.JSONError(c, http.StatusBadRequest, services.CodeInvalidInput, "invalid request payload")
		return
	}
	if err := tc.Tenants.Create(&tenant); err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, tenant)
}

// PATCH /api/tenants/:id
func (tc *TenantController) UpdateTenant(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, services.CodeInvalidInput, "invalid request payload")
		return
	}
	if err := tc.Tenants.Update(id, updates); err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "tenant updated"})
}

type moveOutRequest struct {
	MoveDate string `json:"moveDate" binding:"required"`
	Reason   string `json:"reason" binding:"required"`
	Note     string `json:"note"`
}

// POST /api/tenants/:id/move-out
func (tc *TenantController) MoveOut(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req moveOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, services.CodeInvalidInput, "moveDate and reason are required")
		return
	}
	moveDate, err := parseDate(req.MoveDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, services.CodeInvalidDateRange, "invalid moveDate")
		return
	}
	if err := tc.Moves.MoveOut(id, moveDate, req.Reason, req.Note); err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "tenant moved out"})
}

type moveInRequest struct {
	NewRoomID uint               `json:"newRoomId" binding:"required"`
	MoveDate  string             `json:"moveDate" binding:"required"`
	Reason    string             `json:"reason"`
	Note      string             `json:"note"`
	Contract  *moveInContractDTO `json:"contract"`
}

type moveInContractDTO struct {
	ContractNumber string  `json:"contractNumber"`
	StartDate      string  `json:"startDate" binding:"required"`
	EndDate        string  `json:"endDate" binding:"required"`
	MonthlyRent    float64 `json:"monthlyRent"`
	Deposit        float64 `json:"deposit"`
}

// POST /api/tenants/:id/move-in
func (tc *TenantController) MoveIn(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req moveInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, services.CodeInvalidInput, "newRoomId and moveDate are required")
		return
	}
	moveDate, err := parseDate(req.MoveDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, services.CodeInvalidDateRange, "invalid moveDate")
		return
	}

	var contractIn *services.ContractInput
	if req.Contract != nil {
		start, err := parseDate(req.Contract.StartDate)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, services.CodeInvalidDateRange, "invalid contract startDate")
			return
		}
		end, err := parseDate(req.Contract.EndDate)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, services.CodeInvalidDateRange, "invalid contract endDate")
			return
		}
		contractIn = &services.ContractInput{
			ContractNumber: req.Contract.ContractNumber,
			StartDate:      start,
			EndDate:        end,
			MonthlyRent:    req.Contract.MonthlyRent,
			Deposit:        req.Contract.Deposit,
		}
	}

	if err := tc.Moves.MoveIn(id, req.NewRoomID, moveDate, req.Reason, req.Note, contractIn); err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "tenant moved in"})
}
