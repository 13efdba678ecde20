package handlers

import (
	"net/http"

	serviceRepo "fotura/database/repository/service"
	technicianRepo "fotura/database/repository/technician"
	"fotura/models"
	"fotura/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// TechnicianHandler exposes the thin admin CRUD around technicians and the
// service catalogue. The scheduling core is the only writer of bookings;
// these endpoints only manage the resources it schedules over.
type TechnicianHandler struct {
	Techs    technicianRepo.TechnicianRepository
	Services serviceRepo.ServiceRepository
}

func NewTechnicianHandler(techs technicianRepo.TechnicianRepository, services serviceRepo.ServiceRepository) *TechnicianHandler {
	return &TechnicianHandler{Techs: techs, Services: services}
}

func (h *TechnicianHandler) ListTechniciansHandler(c *gin.Context) {
	techs, err := h.Techs.List(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list technicians", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"technicians": techs})
}

func (h *TechnicianHandler) GetTechnicianHandler(c *gin.Context) {
	tech, err := h.Techs.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.JSONError(c, http.StatusNotFound, "technician not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch technician", err.Error())
		return
	}
	c.JSON(http.StatusOK, tech)
}

func (h *TechnicianHandler) CreateTechnicianHandler(c *gin.Context) {
	var tech models.Technician
	if err := c.ShouldBindJSON(&tech); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if !tech.HomeBase.Valid() {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "home base coordinates are required")
		return
	}
	tech.Active = true

	if err := h.Techs.Create(c.Request.Context(), &tech); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create technician", err.Error())
		return
	}
	c.JSON(http.StatusCreated, tech)
}

// DeactivateTechnicianHandler removes a technician from scheduling without
// touching their booking history.
func (h *TechnicianHandler) DeactivateTechnicianHandler(c *gin.Context) {
	if err := h.Techs.SetActive(c.Request.Context(), c.Param("id"), false); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.JSONError(c, http.StatusNotFound, "technician not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to deactivate technician", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *TechnicianHandler) ListServicesHandler(c *gin.Context) {
	visibleOnly := c.Query("all") == ""
	svcs, err := h.Services.List(c.Request.Context(), visibleOnly)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list services", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": svcs})
}

func (h *TechnicianHandler) CreateServiceHandler(c *gin.Context) {
	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if svc.DurationMinutes <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "duration must be positive")
		return
	}

	if err := h.Services.Create(c.Request.Context(), &svc); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create service", err.Error())
		return
	}
	c.JSON(http.StatusCreated, svc)
}
