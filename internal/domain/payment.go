package domain

// PaymentProof identifies an on-chain transfer the caller claims to have
// made. ExpectedAmount is a whole-token decimal string; the verifier scales
// it by the token's decimals before comparing against the logged value in
// base units.
type PaymentProof struct {
	TxHash         string `json:"tx_hash"`
	TokenAddress   string `json:"token_address"`
	Recipient      string `json:"recipient"`
	ExpectedAmount string `json:"expected_amount"`
	Decimals       int    `json:"decimals"`
}
