package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petalforge/grovetender/internal/domain"
)

// recordingVerifier captures the proof the gate builds
type recordingVerifier struct {
	proof domain.PaymentProof
	err   error
}

func (r *recordingVerifier) VerifyTransfer(_ context.Context, proof domain.PaymentProof) error {
	r.proof = proof
	return r.err
}

func TestGate_Require_BuildsProof(t *testing.T) {
	verifier := &recordingVerifier{}
	gate := NewGate(verifier, testToken, testTreasury)

	err := gate.Require(context.Background(), testTxHash, "1.5")
	require.NoError(t, err)

	assert.Equal(t, testTxHash, verifier.proof.TxHash)
	assert.Equal(t, testToken, verifier.proof.TokenAddress)
	assert.Equal(t, testTreasury, verifier.proof.Recipient)
	assert.Equal(t, "1.5", verifier.proof.ExpectedAmount)
	assert.Equal(t, DefaultTokenDecimals, verifier.proof.Decimals)
}

func TestGate_Require_PropagatesRejection(t *testing.T) {
	verifier := &recordingVerifier{err: domain.ErrPaymentNotVerified}
	gate := NewGate(verifier, testToken, testTreasury)

	err := gate.Require(context.Background(), testTxHash, "1")
	assert.ErrorIs(t, err, domain.ErrPaymentNotVerified)
}

func TestScaleAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		count   int
		want    string
		wantErr bool
	}{
		{name: "integer price", amount: "1", count: 3, want: "3"},
		{name: "fractional price stays exact", amount: "0.25", count: 3, want: "0.75"},
		{name: "fraction resolves to integer", amount: "0.5", count: 4, want: "2"},
		{name: "single unit", amount: "1.5", count: 1, want: "1.5"},
		{name: "zero count rejected", amount: "1", count: 0, wantErr: true},
		{name: "negative count rejected", amount: "1", count: -2, wantErr: true},
		{name: "negative price rejected", amount: "-1", count: 2, wantErr: true},
		{name: "garbage price rejected", amount: "abc", count: 2, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScaleAmount(tt.amount, tt.count)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTokenAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals int
		want     string
		wantErr  bool
	}{
		{name: "whole tokens", amount: "150000", decimals: 18, want: "150000000000000000000000"},
		{name: "fractional tokens", amount: "0.5", decimals: 18, want: "500000000000000000"},
		{name: "zero decimals", amount: "42", decimals: 0, want: "42"},
		{name: "sub-base-unit precision rejected", amount: "0.0000000000000000001", decimals: 18, wantErr: true},
		{name: "negative amount rejected", amount: "-1", decimals: 18, wantErr: true},
		{name: "negative decimals rejected", amount: "1", decimals: -1, wantErr: true},
		{name: "garbage rejected", amount: "1.2.3", decimals: 18, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTokenAmount(tt.amount, tt.decimals)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
