// Command chainprobe fetches a transaction receipt from the configured RPC
// node and dumps its logs, labeling the ones that match known event
// signatures. Useful when a payment will not verify and you need to see
// what the transaction actually emitted.
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/sha3"

	"github.com/petalforge/grovetender/internal/chain"
)

// candidateSignatures are the event signatures worth labeling in output
var candidateSignatures = []string{
	"Transfer(address,address,uint256)",
	"Approval(address,address,uint256)",
	"TransferSingle(address,address,address,uint256,uint256)",
	"Deposit(address,uint256)",
	"Withdrawal(address,uint256)",
}

func main() {
	timeout := flag.Duration("timeout", 15*time.Second, "RPC request timeout")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: chainprobe [-timeout 15s] <tx-hash>\n")
		os.Exit(2)
	}
	txHash := flag.Arg(0)

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	rpcURL := os.Getenv("CHAIN_RPC_URL")
	if rpcURL == "" {
		log.Fatal("CHAIN_RPC_URL must be set")
	}

	client, err := chain.NewClient(chain.Config{RPCURL: rpcURL, Timeout: *timeout})
	if err != nil {
		log.Fatalf("Failed to create chain client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	block, err := client.BlockNumber(ctx)
	if err != nil {
		log.Fatalf("Failed to query block number: %v", err)
	}
	fmt.Printf("Node head: block %d\n", block)

	receipt, err := client.TransactionReceipt(ctx, txHash)
	if err != nil {
		log.Fatalf("Failed to fetch receipt: %v", err)
	}
	if receipt == nil {
		fmt.Println("Transaction not found (unknown hash or not yet mined)")
		return
	}

	fmt.Printf("\n--- Receipt %s ---\n", receipt.TransactionHash)
	fmt.Printf("Status: %s\n", receipt.Status)
	fmt.Printf("Block:  %s\n", receipt.BlockNumber)
	fmt.Printf("From:   %s\n", receipt.From)
	fmt.Printf("To:     %s\n", receipt.To)
	fmt.Printf("Logs:   %d\n", len(receipt.Logs))

	topics := topicTable()
	for i, l := range receipt.Logs {
		fmt.Printf("\nLog %d (contract %s)\n", i, l.Address)
		label := "unrecognized"
		if len(l.Topics) > 0 {
			if sig, ok := topics[strings.ToLower(l.Topics[0])]; ok {
				label = sig
			}
		}
		fmt.Printf("  event: %s\n", label)
		for j, t := range l.Topics {
			fmt.Printf("  topic%d: %s\n", j, t)
		}
		fmt.Printf("  data: %s\n", l.Data)
		if l.Removed {
			fmt.Println("  (removed by reorg)")
		}
	}
}

// topicTable maps topic0 hashes to the signatures that produce them
func topicTable() map[string]string {
	table := make(map[string]string, len(candidateSignatures))
	for _, sig := range candidateSignatures {
		h := sha3.NewLegacyKeccak256()
		h.Write([]byte(sig))
		table["0x"+hex.EncodeToString(h.Sum(nil))] = sig
	}
	return table
}
