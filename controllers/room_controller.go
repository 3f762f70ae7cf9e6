package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rental-backend/models"
	"rental-backend/services"
	"rental-backend/utils"
)

type RoomController struct {
	Rooms        *services.RoomService
	Availability *services.AvailabilityService
}

func NewRoomController(rooms *services.RoomService, availability *services.AvailabilityService) *RoomController {
	return &RoomController{Rooms: rooms, Availability: availability}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, services.CodeInvalidInput, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// GET /api/rooms
func (rc *RoomController) GetRooms(c *gin.Context) {
	var rooms []models.Room
	var err error
	if raw := c.Query("property_id"); raw != "" {
		propertyID, parseErr := strconv.ParseUint(raw, 10, 32)
		if parseErr != nil {
			utils.JSONError(c, http.StatusBadRequest, services.CodeInvalidInput, "invalid property_id")
			return
		}
		rooms, err = rc.Rooms.GetByProperty(uint(propertyID))
	} else {
		rooms, err = rc.Rooms.GetAll()
	}
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// GET /api/rooms/:id
func (rc *RoomController) GetRoomByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	room, err := rc.Rooms.GetByID(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// POST /api/rooms
func (rc *RoomController) CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.JSONError(c, http.StatusBadRequest, services.CodeInvalidInput, "invalid request payload")
		return
	}
	if err := rc.Rooms.Create(&room); err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

// PATCH /api/rooms/:id
func (rc *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, services.CodeInvalidInput, "invalid request payload")
		return
	}
	if err := rc.Rooms.Update(id, updates); err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "room updated"})
}

// DELETE /api/rooms/:id
func (rc *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := rc.Rooms.Delete(id); err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "room deleted"})
}

// GET /api/rooms/:id/can-delete
func (rc *RoomController) CanDeleteRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	check, err := rc.Rooms.CanDelete(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, check)
}

type occupancyRequest struct {
	Status    string `json:"status" binding:"required"`
	Occupants *int   `json:"occupants" binding:"required"`
}

// PATCH /api/rooms/:id/occupancy
func (rc *RoomController) SetOccupancy(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req occupancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, services.CodeInvalidInput, "status and occupants are required")
		return
	}
	if err := rc.Rooms.SetOccupancy(id, req.Status, *req.Occupants); err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "occupancy updated"})
}

// GET /api/rooms/:id/availability?start=YYYY-MM-DD&end=YYYY-MM-DD&exclude_contract_id=N
func (rc *RoomController) CheckAvailability(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	start, err := parseDate(c.Query("start"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, services.CodeInvalidDateRange, "invalid start date")
		return
	}
	end, err := parseDate(c.Query("end"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, services.CodeInvalidDateRange, "invalid end date")
		return
	}

	var excludeID *uint
	if raw := c.Query("exclude_contract_id"); raw != "" {
		parsed, parseErr := strconv.ParseUint(raw, 10, 32)
		if parseErr != nil {
			utils.JSONError(c, http.StatusBadRequest, services.CodeInvalidInput, "invalid exclude_contract_id")
			return
		}
		v := uint(parsed)
		excludeID = &v
	}

	result, err := rc.Availability.Check(id, start, end, excludeID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}
