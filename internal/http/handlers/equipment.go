package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type equipmentRequest struct {
	EquipmentID int64 `json:"equipmentId" binding:"required"`
}

func (h *Handler) ActiveEquipment(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	items, err := h.Svc.Equipment.Active(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Inventory(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	items, err := h.Svc.Equipment.Inventory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Equip(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var req equipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Equipment ID is required"})
		return
	}

	eq, err := h.Svc.Equipment.Equip(c.Request.Context(), id, req.EquipmentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, eq)
}

func (h *Handler) Unequip(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var req equipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Equipment ID is required"})
		return
	}

	eq, err := h.Svc.Equipment.Unequip(c.Request.Context(), id, req.EquipmentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, eq)
}

func (h *Handler) RepairEquipment(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var req equipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Equipment ID is required"})
		return
	}

	eq, err := h.Svc.Equipment.Repair(c.Request.Context(), id, req.EquipmentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, eq)
}
