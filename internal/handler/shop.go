package handler

import (
	"net/http"

	"github.com/petalforge/grovetender/internal/domain"
	"github.com/petalforge/grovetender/internal/logger"
	"github.com/petalforge/grovetender/internal/shop"
)

// BuyConsumablesRequest represents the request to purchase consumables
type BuyConsumablesRequest struct {
	OwnerID  string `json:"owner_id" validate:"required,max=64"`
	Type     string `json:"type" validate:"required,consumable"`
	Quantity int    `json:"quantity" validate:"required,min=1,max=100"`
	TxHash   string `json:"tx_hash" validate:"required,txhash"`
}

// ShopHandler handles shop-related HTTP requests
type ShopHandler struct {
	shopSvc shop.Service
}

// NewShopHandler creates a new shop handler
func NewShopHandler(shopSvc shop.Service) *ShopHandler {
	return &ShopHandler{shopSvc: shopSvc}
}

// Buy handles the buy endpoint
// @Summary Buy consumables
// @Description Verifies the purchase payment (unit price times quantity) and credits the consumables
// @Tags shop
// @Accept json
// @Produce json
// @Param request body BuyConsumablesRequest true "Buy request"
// @Success 200 {object} domain.BuyConsumablesResponse "Purchase complete"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 402 {object} ErrorResponse "Payment not verified"
// @Failure 409 {object} ErrorResponse "Payment already used"
// @Router /shop/buy [post]
func (h *ShopHandler) Buy(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req BuyConsumablesRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Buy consumables"); err != nil {
		return
	}

	log.Info("Buy request received", "ownerID", req.OwnerID, "type", req.Type, "quantity", req.Quantity)

	response, err := h.shopSvc.BuyConsumables(r.Context(), shop.BuyRequest{
		OwnerID:  req.OwnerID,
		Type:     domain.ConsumableType(req.Type),
		Quantity: req.Quantity,
		TxHash:   req.TxHash,
	})
	if err != nil {
		respondServiceError(w, r, ErrMsgBuyFailed, err)
		return
	}

	log.Info("Buy successful", "ownerID", req.OwnerID, "type", req.Type, "balance", response.Balance)
	respondJSON(w, http.StatusOK, response)
}

// Inventory handles the consumable inventory endpoint
// @Summary Get consumable inventory
// @Description Returns a user's consumable quantities
// @Tags shop
// @Produce json
// @Param owner_id query string true "Owner ID"
// @Success 200 {object} domain.ConsumableInventory
// @Failure 400 {object} ErrorResponse "Missing owner_id"
// @Router /shop/inventory [get]
func (h *ShopHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetQueryParam(r, w, "owner_id")
	if !ok {
		return
	}

	inventory, err := h.shopSvc.Inventory(r.Context(), ownerID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetInventoryFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, inventory)
}
