package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petalforge/grovetender/internal/domain"
	"github.com/petalforge/grovetender/internal/garden"
)

const otherPlantUUID = "9f7b2c1d-4e5f-4a6b-8c9d-0e1f2a3b4c5d"

type stubGardenService struct {
	mergeResp *domain.MergePlantsResponse
	mergeErr  error
	plants    []domain.Plant
	plantsErr error

	gotMerge garden.MergeRequest
}

func (s *stubGardenService) MergePlants(_ context.Context, req garden.MergeRequest) (*domain.MergePlantsResponse, error) {
	s.gotMerge = req
	return s.mergeResp, s.mergeErr
}

func (s *stubGardenService) Plants(_ context.Context, _ string) ([]domain.Plant, error) {
	return s.plants, s.plantsErr
}

func mergeBody(t *testing.T) string {
	t.Helper()
	body, err := json.Marshal(MergePlantsRequest{
		PlantID:      validPlantUUID,
		OtherPlantID: otherPlantUUID,
		OwnerID:      "grower-1",
		TxHash:       validTxHash,
	})
	require.NoError(t, err)
	return string(body)
}

func TestGardenHandler_Merge(t *testing.T) {
	gardenSvc := &stubGardenService{
		mergeResp: &domain.MergePlantsResponse{
			SurvivorID: otherPlantUUID,
			BurnedID:   validPlantUUID,
			NewPower:   7,
			Message:    MsgMergeSuccess,
		},
	}
	h := NewGardenHandler(gardenSvc)

	rec := postJSON(t, h.Merge, mergeBody(t))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.MergePlantsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, otherPlantUUID, resp.SurvivorID)
	assert.Equal(t, 7, resp.NewPower)

	assert.Equal(t, validPlantUUID, gardenSvc.gotMerge.PlantID)
	assert.Equal(t, otherPlantUUID, gardenSvc.gotMerge.OtherPlantID)
}

func TestGardenHandler_Merge_NotOwner(t *testing.T) {
	h := NewGardenHandler(&stubGardenService{mergeErr: domain.ErrNotPlantOwner})

	rec := postJSON(t, h.Merge, mergeBody(t))

	require.Equal(t, http.StatusForbidden, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ErrMsgNotPlantOwnerError, resp.Error)
}

func TestGardenHandler_Merge_PlantNotFound(t *testing.T) {
	h := NewGardenHandler(&stubGardenService{mergeErr: domain.ErrPlantNotFound})

	rec := postJSON(t, h.Merge, mergeBody(t))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGardenHandler_Merge_ValidationFailure(t *testing.T) {
	gardenSvc := &stubGardenService{}
	h := NewGardenHandler(gardenSvc)

	rec := postJSON(t, h.Merge, `{"plant_id":"`+validPlantUUID+`","other_plant_id":"nope","owner_id":"grower-1","tx_hash":"`+validTxHash+`"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, gardenSvc.gotMerge.PlantID)
}

func TestGardenHandler_Plants(t *testing.T) {
	h := NewGardenHandler(&stubGardenService{
		plants: []domain.Plant{
			{ID: validPlantUUID, OwnerID: "grower-1", Rarity: domain.RarityRare, Power: 2, Status: domain.PlantStatusActive},
			{ID: otherPlantUUID, OwnerID: "grower-1", Rarity: domain.RarityUncommon, Power: 5, Status: domain.PlantStatusBurned},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/garden/plants?owner_id=grower-1", nil)
	rec := httptest.NewRecorder()
	h.Plants(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp PlantsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "grower-1", resp.OwnerID)
	require.Len(t, resp.Plants, 2)
	assert.Equal(t, domain.PlantStatusBurned, resp.Plants[1].Status)
}
