package handler

import (
	"errors"
	"net/http"

	"github.com/chords-academy/chords-crm-backend/internal/model"
	"github.com/chords-academy/chords-crm-backend/internal/repository"
	"github.com/chords-academy/chords-crm-backend/internal/response"
	"github.com/chords-academy/chords-crm-backend/internal/service"
	"github.com/chords-academy/chords-crm-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the package and instrument catalogs.
type CatalogHandler struct {
	packageService *service.PackageService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(packageService *service.PackageService) *CatalogHandler {
	return &CatalogHandler{packageService: packageService}
}

// ListPackages godoc
// GET /api/v1/admin/packages
func (h *CatalogHandler) ListPackages(c *gin.Context) {
	packages, err := h.packageService.ListPackages(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"packages": packages})
}

// CreatePackage godoc
// POST /api/v1/admin/packages
func (h *CatalogHandler) CreatePackage(c *gin.Context) {
	var req model.CreatePackageRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	pkg, err := h.packageService.CreatePackage(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"package": pkg})
}

// DeactivatePackage godoc
// DELETE /api/v1/admin/packages/:name
// Retires the tier; students keep their snapshotted class counts.
func (h *CatalogHandler) DeactivatePackage(c *gin.Context) {
	if err := h.packageService.DeactivatePackage(c.Request.Context(), c.Param("name")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "package deactivated"})
}

// ListInstruments godoc
// GET /api/v1/admin/instruments
func (h *CatalogHandler) ListInstruments(c *gin.Context) {
	instruments, err := h.packageService.ListInstruments(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"instruments": instruments})
}

// CreateInstrument godoc
// POST /api/v1/admin/instruments
func (h *CatalogHandler) CreateInstrument(c *gin.Context) {
	var req model.CreateInstrumentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	instrument, err := h.packageService.CreateInstrument(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"instrument": instrument})
}

// DeactivateInstrument godoc
// DELETE /api/v1/admin/instruments/:name
func (h *CatalogHandler) DeactivateInstrument(c *gin.Context) {
	if err := h.packageService.DeactivateInstrument(c.Request.Context(), c.Param("name")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "instrument deactivated"})
}
