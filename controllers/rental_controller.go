package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-backend/services"
	"rental-backend/utils"
)

type RentalController struct {
	Rentals *services.RentalService
}

func NewRentalController(rentals *services.RentalService) *RentalController {
	return &RentalController{Rentals: rentals}
}

type createRentalRequest struct {
	RoomID uint `json:"roomId" binding:"required"`
	Tenant struct {
		TenantID *uint  `json:"tenantId"`
		FullName string `json:"fullname"`
		Phone    string `json:"phone"`
		Email    string `json:"email"`
		IDNumber string `json:"idNumber"`
	} `json:"tenant" binding:"required"`
	Contract struct {
		ContractNumber string  `json:"contractNumber"`
		StartDate      string  `json:"startDate" binding:"required"`
		EndDate        string  `json:"endDate" binding:"required"`
		MonthlyRent    float64 `json:"monthlyRent"`
		Deposit        float64 `json:"deposit"`
	} `json:"contract" binding:"required"`
}

// POST /api/rentals
func (rc *RentalController) CreateRental(c *gin.Context) {
	var req createRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, services.CodeInvalidInput, "invalid request payload")
		return
	}

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

	result, err := rc.Rentals.CreateRental(req.RoomID,
		services.TenantInput{
			TenantID: req.Tenant.TenantID,
			FullName: req.Tenant.FullName,
			Phone:    req.Tenant.Phone,
			Email:    req.Tenant.Email,
			IDNumber: req.Tenant.IDNumber,
		},
		services.ContractInput{
			ContractNumber: req.Contract.ContractNumber,
			StartDate:      start,
			EndDate:        end,
			MonthlyRent:    req.Contract.MonthlyRent,
			Deposit:        req.Contract.Deposit,
		})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, result)
}
