package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/petalforge/grovetender/internal/chain"
	"github.com/petalforge/grovetender/internal/domain"
	"github.com/petalforge/grovetender/internal/logger"
	"github.com/petalforge/grovetender/internal/metrics"
)

// ReceiptSource fetches transaction receipts from a chain data provider.
// A nil receipt with nil error means the transaction is unknown or unmined;
// the caller, not this package, decides whether to retry later.
type ReceiptSource interface {
	TransactionReceipt(ctx context.Context, txHash string) (*chain.Receipt, error)
}

// Verifier proves that a transaction transferred an exact token amount to a
// designated recipient. It never submits transactions and performs no
// retries of its own.
type Verifier interface {
	// VerifyTransfer returns nil when the proof's transaction contains an
	// ERC-20 transfer of exactly the expected amount to the recipient from
	// the expected token contract. Definite mismatches return
	// domain.ErrPaymentNotVerified; provider failures return an error
	// wrapping domain.ErrChainUnavailable.
	VerifyTransfer(ctx context.Context, proof domain.PaymentProof) error
}

type verifier struct {
	source  ReceiptSource
	timeout time.Duration
}

// NewVerifier creates a payment verifier backed by the given receipt source
func NewVerifier(source ReceiptSource, timeout time.Duration) Verifier {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &verifier{
		source:  source,
		timeout: timeout,
	}
}

func (v *verifier) VerifyTransfer(ctx context.Context, proof domain.PaymentProof) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgVerifyCalled, "txHash", proof.TxHash, "token", proof.TokenAddress, "recipient", proof.Recipient, "amount", proof.ExpectedAmount)

	decimals := proof.Decimals
	if decimals == 0 {
		decimals = DefaultTokenDecimals
	}

	expected, err := ParseTokenAmount(proof.ExpectedAmount, decimals)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	receipt, err := v.source.TransactionReceipt(ctx, proof.TxHash)
	if err != nil {
		// Transient infrastructure failure: must stay distinguishable from a
		// definite mismatch for dispute resolution, and is never treated as
		// success.
		log.Error(LogMsgProviderFailed, "txHash", proof.TxHash, "error", err)
		metrics.PaymentsRejected.WithLabelValues(ReasonProviderError).Inc()
		return fmt.Errorf("%w: %v", domain.ErrChainUnavailable, err)
	}

	if receipt == nil {
		log.Warn(LogMsgNoReceipt, "txHash", proof.TxHash)
		metrics.PaymentsRejected.WithLabelValues(ReasonNoReceipt).Inc()
		return fmt.Errorf("%w: no receipt for %s", domain.ErrPaymentNotVerified, proof.TxHash)
	}

	for _, entry := range receipt.Logs {
		if !strings.EqualFold(entry.Address, proof.TokenAddress) {
			continue
		}

		transfer, ok := decodeTransferLog(entry)
		if !ok {
			// Some other event on the token contract; keep scanning
			continue
		}

		if !strings.EqualFold(transfer.To, proof.Recipient) {
			continue
		}

		// Exact match only: partial payment and overpayment are both
		// invalid proof of an exact-priced action
		if transfer.Value.Cmp(expected) == 0 {
			log.Info(LogMsgTransferMatched, "txHash", proof.TxHash, "from", transfer.From, "value", transfer.Value.String())
			metrics.PaymentsVerified.Inc()
			return nil
		}
	}

	log.Warn(LogMsgNoMatchingTransfer, "txHash", proof.TxHash, "logCount", len(receipt.Logs))
	metrics.PaymentsRejected.WithLabelValues(ReasonNoMatch).Inc()
	return fmt.Errorf("%w: no transfer of %s to %s in tx %s", domain.ErrPaymentNotVerified, proof.ExpectedAmount, proof.Recipient, proof.TxHash)
}
