package handler

import (
	"math"
	"net/http"

	"github.com/petalforge/grovetender/internal/domain"
	"github.com/petalforge/grovetender/internal/farming"
	"github.com/petalforge/grovetender/internal/logger"
	"github.com/petalforge/grovetender/internal/settlement"
)

// ApplyConsumablesRequest represents the request to apply consumables to a plant
type ApplyConsumablesRequest struct {
	PlantID string   `json:"plant_id" validate:"required,uuid"`
	OwnerID string   `json:"owner_id" validate:"required,max=64"`
	Types   []string `json:"types" validate:"required,min=1,max=3,dive,consumable"`
	TxHash  string   `json:"tx_hash" validate:"required,txhash"`
}

// ClaimRewardsRequest represents the request to settle and claim accrued rewards
type ClaimRewardsRequest struct {
	PlantID string `json:"plant_id" validate:"required,uuid"`
	OwnerID string `json:"owner_id" validate:"required,max=64"`
	TxHash  string `json:"tx_hash" validate:"required,txhash"`
}

// FarmHandler handles farming-related HTTP requests
type FarmHandler struct {
	farmingSvc    farming.Service
	settlementSvc settlement.Service
}

// NewFarmHandler creates a new farm handler
func NewFarmHandler(farmingSvc farming.Service, settlementSvc settlement.Service) *FarmHandler {
	return &FarmHandler{
		farmingSvc:    farmingSvc,
		settlementSvc: settlementSvc,
	}
}

// Apply handles the apply-consumables endpoint
// @Summary Apply consumables to a plant
// @Description Verifies the activation payment, deducts inventory, and applies the consumables
// @Tags farm
// @Accept json
// @Produce json
// @Param request body ApplyConsumablesRequest true "Apply request"
// @Success 200 {object} domain.ApplyConsumablesResponse "Consumables applied"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 402 {object} ErrorResponse "Payment not verified"
// @Failure 503 {object} ErrorResponse "Chain provider unavailable"
// @Router /farm/apply [post]
func (h *FarmHandler) Apply(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req ApplyConsumablesRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Apply consumables"); err != nil {
		return
	}

	log.Info("Apply request received", "plantID", req.PlantID, "ownerID", req.OwnerID, "types", req.Types)

	types := make([]domain.ConsumableType, len(req.Types))
	for i, t := range req.Types {
		types[i] = domain.ConsumableType(t)
	}

	response, err := h.farmingSvc.ApplyConsumables(r.Context(), farming.ApplyRequest{
		PlantID: req.PlantID,
		OwnerID: req.OwnerID,
		Types:   types,
		TxHash:  req.TxHash,
	})
	if err != nil {
		respondServiceError(w, r, ErrMsgApplyFailed, err)
		return
	}

	log.Info("Apply successful", "plantID", req.PlantID, "phase", response.Phase)
	respondJSON(w, http.StatusOK, response)
}

// Claim handles the claim endpoint
// @Summary Claim accrued rewards
// @Description Verifies the claim-fee payment, settles the accrued interval, and credits the net reward
// @Tags farm
// @Accept json
// @Produce json
// @Param request body ClaimRewardsRequest true "Claim request"
// @Success 200 {object} domain.ClaimResponse "Rewards claimed"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 402 {object} ErrorResponse "Payment not verified"
// @Failure 409 {object} ErrorResponse "Not farming, expired, or nothing to settle"
// @Failure 503 {object} ErrorResponse "Chain provider unavailable"
// @Router /farm/claim [post]
func (h *FarmHandler) Claim(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req ClaimRewardsRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Claim rewards"); err != nil {
		return
	}

	log.Info("Claim request received", "plantID", req.PlantID, "ownerID", req.OwnerID)

	response, err := h.settlementSvc.Claim(r.Context(), settlement.ClaimRequest{
		PlantID: req.PlantID,
		OwnerID: req.OwnerID,
		TxHash:  req.TxHash,
	})
	if err != nil {
		respondServiceError(w, r, ErrMsgClaimFailed, err)
		return
	}

	// Amounts accrue unrounded; round for display only
	response.GrossRewards = roundHundredths(response.GrossRewards)
	response.Fee = roundHundredths(response.Fee)
	response.NetRewards = roundHundredths(response.NetRewards)

	log.Info("Claim successful", "plantID", req.PlantID, "net", response.NetRewards)
	respondJSON(w, http.StatusOK, response)
}

// Status handles the farming status endpoint
// @Summary Get farming status
// @Description Reports a plant's farming phase, missing consumables, and unsettled time
// @Tags farm
// @Produce json
// @Param plant_id query string true "Plant ID"
// @Success 200 {object} domain.FarmingStatusResponse
// @Failure 400 {object} ErrorResponse "Missing plant_id"
// @Router /farm/status [get]
func (h *FarmHandler) Status(w http.ResponseWriter, r *http.Request) {
	plantID, ok := GetQueryParam(r, w, "plant_id")
	if !ok {
		return
	}

	response, err := h.farmingSvc.Status(r.Context(), plantID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetStatusFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, response)
}

// Balance handles the reward balance endpoint
// @Summary Get reward balance
// @Description Returns a user's accumulated reward units
// @Tags farm
// @Produce json
// @Param owner_id query string true "Owner ID"
// @Success 200 {object} BalanceResponse
// @Failure 400 {object} ErrorResponse "Missing owner_id"
// @Router /farm/balance [get]
func (h *FarmHandler) Balance(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetQueryParam(r, w, "owner_id")
	if !ok {
		return
	}

	balance, err := h.settlementSvc.Balance(r.Context(), ownerID)
	if err != nil {
		respondServiceError(w, r, "Get balance", err)
		return
	}

	respondJSON(w, http.StatusOK, BalanceResponse{
		OwnerID: ownerID,
		Balance: roundHundredths(balance),
	})
}

// BalanceResponse reports a user's reward balance
type BalanceResponse struct {
	OwnerID string  `json:"owner_id"`
	Balance float64 `json:"balance"`
}

// roundHundredths rounds to two decimal places for display
func roundHundredths(v float64) float64 {
	return math.Round(v*100) / 100
}
