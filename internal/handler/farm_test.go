package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petalforge/grovetender/internal/domain"
	"github.com/petalforge/grovetender/internal/farming"
	"github.com/petalforge/grovetender/internal/settlement"
)

type stubFarmingService struct {
	applyResp  *domain.ApplyConsumablesResponse
	applyErr   error
	statusResp *domain.FarmingStatusResponse
	statusErr  error

	gotApply  farming.ApplyRequest
	gotStatus string
}

func (s *stubFarmingService) ApplyConsumables(_ context.Context, req farming.ApplyRequest) (*domain.ApplyConsumablesResponse, error) {
	s.gotApply = req
	return s.applyResp, s.applyErr
}

func (s *stubFarmingService) Status(_ context.Context, plantID string) (*domain.FarmingStatusResponse, error) {
	s.gotStatus = plantID
	return s.statusResp, s.statusErr
}

type stubSettlementService struct {
	claimResp *domain.ClaimResponse
	claimErr  error
	balance   float64
	balErr    error

	gotClaim settlement.ClaimRequest
}

func (s *stubSettlementService) Claim(_ context.Context, req settlement.ClaimRequest) (*domain.ClaimResponse, error) {
	s.gotClaim = req
	return s.claimResp, s.claimErr
}

func (s *stubSettlementService) Balance(_ context.Context, _ string) (float64, error) {
	return s.balance, s.balErr
}

func postJSON(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func applyBody() string {
	body, _ := json.Marshal(ApplyConsumablesRequest{
		PlantID: validPlantUUID,
		OwnerID: "grower-1",
		Types:   []string{"water", "fertilizer", "antibug"},
		TxHash:  validTxHash,
	})
	return string(body)
}

func TestFarmHandler_Apply(t *testing.T) {
	expires := time.Now().Add(4 * time.Hour).UTC()
	farmingSvc := &stubFarmingService{
		applyResp: &domain.ApplyConsumablesResponse{
			PlantID:   validPlantUUID,
			Phase:     domain.PhaseActive,
			ExpiresAt: &expires,
			Message:   MsgApplySuccess,
		},
	}
	h := NewFarmHandler(farmingSvc, &stubSettlementService{})

	rec := postJSON(t, h.Apply, applyBody())

	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.ApplyConsumablesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.PhaseActive, resp.Phase)

	assert.Equal(t, validPlantUUID, farmingSvc.gotApply.PlantID)
	assert.Equal(t, []domain.ConsumableType{
		domain.ConsumableWater, domain.ConsumableFertilizer, domain.ConsumableAntiBug,
	}, farmingSvc.gotApply.Types)
}

func TestFarmHandler_Apply_MalformedBody(t *testing.T) {
	farmingSvc := &stubFarmingService{}
	h := NewFarmHandler(farmingSvc, &stubSettlementService{})

	rec := postJSON(t, h.Apply, `{"plant_id":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, farmingSvc.gotApply.PlantID)
}

func TestFarmHandler_Apply_ValidationFailure(t *testing.T) {
	h := NewFarmHandler(&stubFarmingService{}, &stubSettlementService{})

	rec := postJSON(t, h.Apply, `{"plant_id":"not-a-uuid","owner_id":"grower-1","types":["water"],"tx_hash":"`+validTxHash+`"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ErrMsgInvalidRequestSummary, resp.Error)
	assert.Contains(t, resp.Fields, "plantid")
}

func TestFarmHandler_Apply_PaymentRejected(t *testing.T) {
	h := NewFarmHandler(&stubFarmingService{applyErr: domain.ErrPaymentNotVerified}, &stubSettlementService{})

	rec := postJSON(t, h.Apply, applyBody())

	require.Equal(t, http.StatusPaymentRequired, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(domain.CodePaymentNotVerified), resp.Code)
}

func TestFarmHandler_Claim_RoundsForDisplay(t *testing.T) {
	settlementSvc := &stubSettlementService{
		claimResp: &domain.ClaimResponse{
			GrossRewards:  0.083333,
			Fee:           0.036667,
			NetRewards:    0.046666,
			SeasonDay:     2,
			FeePercentage: 44,
			Message:       MsgClaimSuccess,
		},
	}
	h := NewFarmHandler(&stubFarmingService{}, settlementSvc)

	body, _ := json.Marshal(ClaimRewardsRequest{
		PlantID: validPlantUUID,
		OwnerID: "grower-1",
		TxHash:  validTxHash,
	})
	rec := postJSON(t, h.Claim, string(body))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.ClaimResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 0.08, resp.GrossRewards, 1e-9)
	assert.InDelta(t, 0.04, resp.Fee, 1e-9)
	assert.InDelta(t, 0.05, resp.NetRewards, 1e-9)
	assert.Equal(t, 44, resp.FeePercentage)

	assert.Equal(t, validPlantUUID, settlementSvc.gotClaim.PlantID)
}

func TestFarmHandler_Claim_NotFarmingConflict(t *testing.T) {
	h := NewFarmHandler(&stubFarmingService{}, &stubSettlementService{claimErr: domain.ErrNotFarming})

	body, _ := json.Marshal(ClaimRewardsRequest{
		PlantID: validPlantUUID,
		OwnerID: "grower-1",
		TxHash:  validTxHash,
	})
	rec := postJSON(t, h.Claim, string(body))

	require.Equal(t, http.StatusConflict, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, string(domain.CodeNotFarming), resp.Code)
	assert.Equal(t, ErrMsgNotFarmingError, resp.Error)
}

func TestFarmHandler_Status(t *testing.T) {
	farmingSvc := &stubFarmingService{
		statusResp: &domain.FarmingStatusResponse{
			PlantID:          validPlantUUID,
			Phase:            domain.PhasePartial,
			MissingTypes:     []domain.ConsumableType{domain.ConsumableAntiBug},
			SecondsRemaining: 7200,
			SeasonDay:        2,
			FeePercentage:    44,
		},
	}
	h := NewFarmHandler(farmingSvc, &stubSettlementService{})

	req := httptest.NewRequest(http.MethodGet, "/farm/status?plant_id="+validPlantUUID, nil)
	rec := httptest.NewRecorder()
	h.Status(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, validPlantUUID, farmingSvc.gotStatus)

	var resp domain.FarmingStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.PhasePartial, resp.Phase)
	assert.Equal(t, int64(7200), resp.SecondsRemaining)
}

func TestFarmHandler_Status_MissingPlantID(t *testing.T) {
	h := NewFarmHandler(&stubFarmingService{}, &stubSettlementService{})

	req := httptest.NewRequest(http.MethodGet, "/farm/status", nil)
	rec := httptest.NewRecorder()
	h.Status(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFarmHandler_Balance(t *testing.T) {
	h := NewFarmHandler(&stubFarmingService{}, &stubSettlementService{balance: 1.256})

	req := httptest.NewRequest(http.MethodGet, "/farm/balance?owner_id=grower-1", nil)
	rec := httptest.NewRecorder()
	h.Balance(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp BalanceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "grower-1", resp.OwnerID)
	assert.InDelta(t, 1.26, resp.Balance, 1e-9)
}
