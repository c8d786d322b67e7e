package payment

import (
	"context"
	"fmt"
	"math/big"

	"github.com/petalforge/grovetender/internal/domain"
)

// Gate binds the verifier to the deployment's token contract and treasury
// recipient so action handlers only supply a hash and a price.
type Gate struct {
	verifier     Verifier
	tokenAddress string
	treasury     string
}

// NewGate creates a payment gate for one token contract and recipient
func NewGate(verifier Verifier, tokenAddress, treasury string) *Gate {
	return &Gate{
		verifier:     verifier,
		tokenAddress: tokenAddress,
		treasury:     treasury,
	}
}

// Require verifies that txHash paid exactly amount (whole-token decimal
// string) to the treasury in the configured token
func (g *Gate) Require(ctx context.Context, txHash, amount string) error {
	return g.verifier.VerifyTransfer(ctx, domain.PaymentProof{
		TxHash:         txHash,
		TokenAddress:   g.tokenAddress,
		Recipient:      g.treasury,
		ExpectedAmount: amount,
		Decimals:       DefaultTokenDecimals,
	})
}

// ScaleAmount multiplies a whole-token decimal price by an integer count,
// returning a decimal string with no precision loss
func ScaleAmount(amount string, count int) (string, error) {
	if count <= 0 {
		return "", fmt.Errorf("%w: count must be positive", domain.ErrInvalidAmount)
	}

	rat, ok := new(big.Rat).SetString(amount)
	if !ok || rat.Sign() < 0 {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidAmount, amount)
	}

	rat.Mul(rat, new(big.Rat).SetInt64(int64(count)))
	if rat.IsInt() {
		return rat.Num().String(), nil
	}
	// Exact decimal expansion: price strings only carry decimal fractions
	return rat.FloatString(ratScale(rat)), nil
}

// ratScale returns the number of fractional digits needed to print the
// rational exactly, assuming a power-of-ten denominator
func ratScale(r *big.Rat) int {
	den := new(big.Int).Set(r.Denom())
	ten := big.NewInt(10)
	digits := 0
	for den.Cmp(big.NewInt(1)) > 0 {
		den.Quo(den, ten)
		digits++
	}
	return digits
}
