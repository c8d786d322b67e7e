package handler

import (
	"net/http"

	"github.com/petalforge/grovetender/internal/domain"
	"github.com/petalforge/grovetender/internal/garden"
	"github.com/petalforge/grovetender/internal/logger"
)

// MergePlantsRequest represents the request to merge two plants
type MergePlantsRequest struct {
	PlantID      string `json:"plant_id" validate:"required,uuid"`
	OtherPlantID string `json:"other_plant_id" validate:"required,uuid"`
	OwnerID      string `json:"owner_id" validate:"required,max=64"`
	TxHash       string `json:"tx_hash" validate:"required,txhash"`
}

// GardenHandler handles garden-related HTTP requests
type GardenHandler struct {
	gardenSvc garden.Service
}

// NewGardenHandler creates a new garden handler
func NewGardenHandler(gardenSvc garden.Service) *GardenHandler {
	return &GardenHandler{gardenSvc: gardenSvc}
}

// Merge handles the merge endpoint
// @Summary Merge two plants
// @Description Burns the weaker plant and folds its power into the stronger one, gated on the merge-fee payment
// @Tags garden
// @Accept json
// @Produce json
// @Param request body MergePlantsRequest true "Merge request"
// @Success 200 {object} domain.MergePlantsResponse "Plants merged"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 402 {object} ErrorResponse "Payment not verified"
// @Failure 403 {object} ErrorResponse "Not the plant owner"
// @Failure 404 {object} ErrorResponse "Plant not found"
// @Router /garden/merge [post]
func (h *GardenHandler) Merge(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req MergePlantsRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Merge plants"); err != nil {
		return
	}

	log.Info("Merge request received", "plantID", req.PlantID, "otherPlantID", req.OtherPlantID, "ownerID", req.OwnerID)

	response, err := h.gardenSvc.MergePlants(r.Context(), garden.MergeRequest{
		PlantID:      req.PlantID,
		OtherPlantID: req.OtherPlantID,
		OwnerID:      req.OwnerID,
		TxHash:       req.TxHash,
	})
	if err != nil {
		respondServiceError(w, r, ErrMsgMergeFailed, err)
		return
	}

	log.Info("Merge successful", "survivorID", response.SurvivorID, "burnedID", response.BurnedID)
	respondJSON(w, http.StatusOK, response)
}

// Plants handles the plant listing endpoint
// @Summary List a user's plants
// @Description Lists all plants for an owner, burned ones included
// @Tags garden
// @Produce json
// @Param owner_id query string true "Owner ID"
// @Success 200 {object} PlantsResponse
// @Failure 400 {object} ErrorResponse "Missing owner_id"
// @Router /garden/plants [get]
func (h *GardenHandler) Plants(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetQueryParam(r, w, "owner_id")
	if !ok {
		return
	}

	plants, err := h.gardenSvc.Plants(r.Context(), ownerID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetPlantsFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, PlantsResponse{OwnerID: ownerID, Plants: plants})
}

// PlantsResponse lists a user's plants
type PlantsResponse struct {
	OwnerID string         `json:"owner_id"`
	Plants  []domain.Plant `json:"plants"`
}
