package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"

	"github.com/hobbleabbas/bapu-gateway/internal/common"
	"github.com/hobbleabbas/bapu-gateway/internal/logging"
	"github.com/hobbleabbas/bapu-gateway/internal/models"
	"github.com/hobbleabbas/bapu-gateway/internal/node"
)

// TransactionService looks up transactions on the node and reduces them to
// a fee/recipient summary.
type TransactionService struct {
	node   node.Caller
	logger logging.Logger
}

func NewTransactionService(caller node.Caller, logger logging.Logger) *TransactionService {
	return &TransactionService{node: caller, logger: logger.With("module", "transactions")}
}

// TransactionLookup is the result of Get: exactly one of Raw (caller asked
// for the unprocessed record) or Summary is set.
type TransactionLookup struct {
	Raw     json.RawMessage
	Summary *models.TransactionSummary
}

var jsonNull = []byte("null")

// Get fetches a transaction by id. A missing transaction reports
// common.ErrNotFound. When full is true the node's record is returned
// unchanged; otherwise it is summarized.
func (s *TransactionService) Get(ctx context.Context, txid string, full bool) (*TransactionLookup, error) {

	result, err := s.node.Call(ctx, "getrawtransaction", txid, true)
	if err != nil {
		var rpcErr *node.RPCError
		if errors.As(err, &rpcErr) && rpcErr.Code == btcjson.ErrRPCInvalidAddressOrKey {
			return nil, common.ErrNotFound
		}
		return nil, err
	}

	if len(result) == 0 || bytes.Equal(result, jsonNull) {
		return nil, common.ErrNotFound
	}

	if full {
		return &TransactionLookup{Raw: result}, nil
	}

	var tx btcjson.TxRawResult
	if err := json.Unmarshal(result, &tx); err != nil {
		return nil, fmt.Errorf("decode transaction %s: %w", txid, err)
	}

	return &TransactionLookup{Summary: Summarize(&tx)}, nil
}

// Summarize reduces a raw transaction to its total value, implied fee, and
// per-recipient breakdown in the node's original output order.
//
// The fee is taken to be the smallest output, on the assumption that the
// smallest output is always the change/fee output. This is a heuristic, not
// a chain-verified fee: for a single-output transaction it makes the fee
// equal the whole transaction value and the total received zero.
func Summarize(tx *btcjson.TxRawResult) *models.TransactionSummary {

	details := make([]models.RecipientDetail, 0, len(tx.Vout))
	var value float64
	var fee float64

	for i, out := range tx.Vout {
		details = append(details, models.RecipientDetail{
			Value:   out.Value,
			Address: out.ScriptPubKey.Address,
		})
		value += out.Value
		if i == 0 || out.Value < fee {
			fee = out.Value
		}
	}

	return &models.TransactionSummary{
		TxID:             tx.Txid,
		Hash:             tx.Hash,
		Time:             tx.Time,
		Confirmations:    tx.Confirmations,
		TransactionValue: value,
		TotalReceived:    value - fee,
		TransactionFee:   fee,
		RecipientDetails: details,
	}
}
