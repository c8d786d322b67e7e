package payment

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/petalforge/grovetender/internal/chain"
	"github.com/petalforge/grovetender/internal/domain"
)

// transferEventTopic is keccak256("Transfer(address,address,uint256)"),
// the topic0 of a standard ERC-20 transfer event.
var transferEventTopic = func() string {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte("Transfer(address,address,uint256)"))
	return "0x" + hex.EncodeToString(h.Sum(nil))
}()

// transferEvent is a decoded ERC-20 Transfer log
type transferEvent struct {
	From  string
	To    string
	Value *big.Int
}

// decodeTransferLog decodes a receipt log as an ERC-20 Transfer event.
// Returns false when the log is some other event; the caller skips it and
// keeps scanning.
func decodeTransferLog(l chain.Log) (transferEvent, bool) {
	// Transfer has indexed from/to plus the topic hash itself
	if len(l.Topics) != 3 {
		return transferEvent{}, false
	}
	if !strings.EqualFold(l.Topics[0], transferEventTopic) {
		return transferEvent{}, false
	}

	from, ok := topicToAddress(l.Topics[1])
	if !ok {
		return transferEvent{}, false
	}
	to, ok := topicToAddress(l.Topics[2])
	if !ok {
		return transferEvent{}, false
	}

	value, ok := parseHexWord(l.Data)
	if !ok {
		return transferEvent{}, false
	}

	return transferEvent{From: from, To: to, Value: value}, true
}

// topicToAddress extracts the 20-byte address from a 32-byte indexed topic
func topicToAddress(topic string) (string, bool) {
	t := strings.TrimPrefix(strings.ToLower(topic), "0x")
	if len(t) != 64 {
		return "", false
	}
	if _, err := hex.DecodeString(t); err != nil {
		return "", false
	}
	return "0x" + t[24:], true
}

// parseHexWord parses a single 32-byte ABI word as an unsigned integer
func parseHexWord(data string) (*big.Int, bool) {
	d := strings.TrimPrefix(strings.ToLower(data), "0x")
	if len(d) != 64 {
		return nil, false
	}
	v, ok := new(big.Int).SetString(d, 16)
	if !ok {
		return nil, false
	}
	return v, true
}

// ParseTokenAmount converts a whole-token decimal string into base units.
// The scaled amount must be an exact integer; anything with sub-base-unit
// precision is rejected rather than rounded.
func ParseTokenAmount(amount string, decimals int) (*big.Int, error) {
	if decimals < 0 {
		return nil, fmt.Errorf("%w: negative decimals", domain.ErrInvalidAmount)
	}

	rat, ok := new(big.Rat).SetString(amount)
	if !ok || rat.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAmount, amount)
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	rat.Mul(rat, new(big.Rat).SetInt(scale))
	if !rat.IsInt() {
		return nil, fmt.Errorf("%w: %q has more than %d decimal places", domain.ErrInvalidAmount, amount, decimals)
	}

	return new(big.Int).Set(rat.Num()), nil
}
