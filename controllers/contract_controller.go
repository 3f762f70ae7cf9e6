package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rental-backend/models"
	"rental-backend/services"
	"rental-backend/utils"
)

type ContractController struct {
	Contracts *services.ContractService
}

func NewContractController(contracts *services.ContractService) *ContractController {
	return &ContractController{Contracts: contracts}
}

// GET /api/contracts?room_id=N | ?tenant_id=N
func (cc *ContractController) GetContracts(c *gin.Context) {
	var contracts []models.Contract
	var err error

	switch {
	case c.Query("room_id") != "":
		roomID, parseErr := strconv.ParseUint(c.Query("room_id"), 10, 32)
		if parseErr != nil {
			utils.JSONError(c, http.StatusBadRequest, services.CodeInvalidInput, "invalid room_id")
			return
		}
		contracts, err = cc.Contracts.GetByRoom(uint(roomID))
	case c.Query("tenant_id") != "":
		tenantID, parseErr := strconv.ParseUint(c.Query("tenant_id"), 10, 32)
		if parseErr != nil {
			utils.JSONError(c, http.StatusBadRequest, services.CodeInvalidInput, "invalid tenant_id")
			return
		}
		contracts, err = cc.Contracts.GetByTenant(uint(tenantID))
	default:
		utils.JSONError(c, http.StatusBadRequest, services.CodeInvalidInput, "room_id or tenant_id is required")
		return
	}

	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, contracts)
}

// GET /api/contracts/:id
func (cc *ContractController) GetContractByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	contract, err := cc.Contracts.GetByID(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, contract)
}
