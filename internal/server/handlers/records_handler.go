package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/poultry/internal/identity"
	"github.com/mamadbah2/poultry/internal/repository"
	"github.com/mamadbah2/poultry/internal/service/husbandry"
)

// RecordsHandler exposes create and read operations for every record kind.
type RecordsHandler struct {
	svc    *husbandry.Services
	logger *zap.Logger
}

// NewRecordsHandler constructs the HTTP adapter over the record services.
func NewRecordsHandler(svc *husbandry.Services, logger *zap.Logger) *RecordsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordsHandler{svc: svc, logger: logger}
}

type flockRequest struct {
	AgeWeeks uint64 `json:"ageWeeks"`
	Count    uint64 `json:"count"`
	Breed    string `json:"breed"`
}

type layerSaleRequest struct {
	AgeWeeks  uint64 `json:"ageWeeks"`
	FlockSize uint64 `json:"flockSize"`
	Sold      uint64 `json:"sold"`
	Breed     string `json:"breed"`
}

type eggRequest struct {
	Breed string `json:"breed"`
	Count uint64 `json:"count"`
}

type poultryRequest struct {
	TypeOfPoultry    string `json:"typeOfPoultry"`
	AgeWeeks         uint64 `json:"ageWeeks"`
	FeedType         string `json:"feedType"`
	VaccinationWeeks uint64 `json:"vaccinationWeeks"`
}

// CreateBroilers records newly placed broilers.
func (h *RecordsHandler) CreateBroilers(c *gin.Context) {
	var req flockRequest
	if !h.bind(c, &req) {
		return
	}
	rec, err := h.svc.Broilers.Create(c.Request.Context(), req.AgeWeeks, req.Count, req.Breed)
	h.created(c, rec, err)
}

// SellBroilers records a broiler sale.
func (h *RecordsHandler) SellBroilers(c *gin.Context) {
	var req flockRequest
	if !h.bind(c, &req) {
		return
	}
	rec, err := h.svc.Broilers.Sell(c.Request.Context(), req.AgeWeeks, req.Count, req.Breed)
	h.created(c, rec, err)
}

// GetBroiler returns one broiler row.
func (h *RecordsHandler) GetBroiler(c *gin.Context) {
	respondByID(h, c, h.svc.Broilers.GetByID)
}

// ListBroilers returns every broiler row.
func (h *RecordsHandler) ListBroilers(c *gin.Context) {
	respondList(h, c, h.svc.Broilers.List)
}

// CreateLayers records newly placed layers.
func (h *RecordsHandler) CreateLayers(c *gin.Context) {
	var req flockRequest
	if !h.bind(c, &req) {
		return
	}
	rec, err := h.svc.Layers.Create(c.Request.Context(), req.AgeWeeks, req.Count, req.Breed)
	h.created(c, rec, err)
}

// SellLayers records a layer sale.
func (h *RecordsHandler) SellLayers(c *gin.Context) {
	var req layerSaleRequest
	if !h.bind(c, &req) {
		return
	}
	rec, err := h.svc.Layers.Sell(c.Request.Context(), req.AgeWeeks, req.FlockSize, req.Sold, req.Breed)
	h.created(c, rec, err)
}

// GetLayer returns one layer row.
func (h *RecordsHandler) GetLayer(c *gin.Context) {
	respondByID(h, c, h.svc.Layers.GetByID)
}

// ListLayers returns every layer row.
func (h *RecordsHandler) ListLayers(c *gin.Context) {
	respondList(h, c, h.svc.Layers.List)
}

// RecordLaidEggs records collected eggs.
func (h *RecordsHandler) RecordLaidEggs(c *gin.Context) {
	var req eggRequest
	if !h.bind(c, &req) {
		return
	}
	rec, err := h.svc.Eggs.RecordLaid(c.Request.Context(), req.Breed, req.Count)
	h.created(c, rec, err)
}

// RecordSoldEggs records an egg sale.
func (h *RecordsHandler) RecordSoldEggs(c *gin.Context) {
	var req eggRequest
	if !h.bind(c, &req) {
		return
	}
	rec, err := h.svc.Eggs.RecordSold(c.Request.Context(), req.Breed, req.Count)
	h.created(c, rec, err)
}

// RecordDamagedEggs records broken eggs.
func (h *RecordsHandler) RecordDamagedEggs(c *gin.Context) {
	var req eggRequest
	if !h.bind(c, &req) {
		return
	}
	rec, err := h.svc.Eggs.RecordDamaged(c.Request.Context(), req.Breed, req.Count)
	h.created(c, rec, err)
}

// GetEgg returns one egg row.
func (h *RecordsHandler) GetEgg(c *gin.Context) {
	respondByID(h, c, h.svc.Eggs.GetByID)
}

// ListEggs returns every egg row.
func (h *RecordsHandler) ListEggs(c *gin.Context) {
	respondList(h, c, h.svc.Eggs.List)
}

// CreatePoultryRecord stores a tagged bird profile.
func (h *RecordsHandler) CreatePoultryRecord(c *gin.Context) {
	var req poultryRequest
	if !h.bind(c, &req) {
		return
	}
	rec, err := h.svc.Poultry.Create(c.Request.Context(), husbandry.PoultryInput{
		TypeOfPoultry:    req.TypeOfPoultry,
		AgeWeeks:         req.AgeWeeks,
		FeedType:         req.FeedType,
		VaccinationWeeks: req.VaccinationWeeks,
	})
	h.created(c, rec, err)
}

// GetPoultryRecord returns one profile by its tag.
func (h *RecordsHandler) GetPoultryRecord(c *gin.Context) {
	respondByID(h, c, h.svc.Poultry.GetByID)
}

// ListPoultryRecords returns every profile.
func (h *RecordsHandler) ListPoultryRecords(c *gin.Context) {
	respondList(h, c, h.svc.Poultry.List)
}

func (h *RecordsHandler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Warn("invalid record payload", zap.Error(err), zap.String("path", c.FullPath()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}

func (h *RecordsHandler) created(c *gin.Context, rec any, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *RecordsHandler) fail(c *gin.Context, err error) {
	h.logger.Error("record operation failed", zap.Error(err), zap.String("path", c.FullPath()))
	if errors.Is(err, repository.ErrStorage) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func respondByID[T any](h *RecordsHandler, c *gin.Context, lookup func(context.Context, identity.Identifier) (T, bool, error)) {
	id, err := identity.ParseIdentifier(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid identifier"})
		return
	}

	rec, ok, err := lookup(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func respondList[T any](h *RecordsHandler, c *gin.Context, list func(context.Context) ([]T, error)) {
	recs, err := list(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if recs == nil {
		recs = []T{}
	}
	c.JSON(http.StatusOK, recs)
}
