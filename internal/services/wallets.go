package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcjson"

	"github.com/hobbleabbas/bapu-gateway/internal/common"
	"github.com/hobbleabbas/bapu-gateway/internal/logging"
	"github.com/hobbleabbas/bapu-gateway/internal/mnemonic"
	"github.com/hobbleabbas/bapu-gateway/internal/models"
	"github.com/hobbleabbas/bapu-gateway/internal/node"
	"github.com/hobbleabbas/bapu-gateway/internal/repositories/wallets"
	"github.com/hobbleabbas/bapu-gateway/internal/walletid"
)

// transferComment is attached to every outbound sendtoaddress call.
const transferComment = "Transacted with the Bank of Bapu API"

// WalletService provisions remote wallets and proxies wallet-scoped calls.
type WalletService struct {
	node   node.Caller
	repo   wallets.Repository
	logger logging.Logger
}

func NewWalletService(caller node.Caller, repo wallets.Repository, logger logging.Logger) *WalletService {
	return &WalletService{node: caller, repo: repo, logger: logger.With("module", "wallets")}
}

// CreateResult is the outcome of a successful (or partially successful)
// provisioning call. Warning carries the node's warning string when it
// created the wallet with a caveat; Mnemonic is empty on partial failure.
type CreateResult struct {
	RemoteID string
	Warning  string
	Mnemonic []string
}

// Create provisions a wallet for the user under the chosen name:
//
//  1. derive the remote label from (user id, name),
//  2. generate a fresh 12-word mnemonic,
//  3. create the wallet on the node,
//  4. persist the metadata row.
//
// A name the user already took reports common.ErrWalletExists and the
// mnemonic is discarded. When the node creation succeeded but the local
// write failed, Create reports common.ErrPartialFailure with the partial
// CreateResult: the remote wallet exists with no durable mnemonic record,
// and the caller must not pretend otherwise.
func (s *WalletService) Create(ctx context.Context, user *models.User, name string) (*CreateResult, error) {

	remoteID := walletid.RemoteID(user.ID, name)

	words, err := mnemonic.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate mnemonic: %w", err)
	}

	result, err := s.node.Call(ctx, "createwallet", remoteID)
	if err != nil {
		var rpcErr *node.RPCError
		if errors.As(err, &rpcErr) && rpcErr.Code == btcjson.ErrRPCWallet {
			return nil, common.ErrWalletExists
		}
		return nil, err
	}

	// Some node versions answer a duplicate name with a bare null result
	// instead of an error object.
	if len(result) == 0 || bytes.Equal(result, jsonNull) {
		return nil, common.ErrWalletExists
	}

	var created btcjson.CreateWalletResult
	if err := json.Unmarshal(result, &created); err != nil {
		return nil, fmt.Errorf("decode createwallet result: %w", err)
	}

	wallet := &models.Wallet{
		RemoteID: remoteID,
		UserID:   user.ID,
		Username: user.Username,
		Mnemonic: strings.Join(words, " "),
	}

	if _, err := s.repo.Create(ctx, wallet); err != nil {
		s.logger.Error(ctx, "wallet created remotely but metadata write failed",
			"remote_id", remoteID, "error", err.Error())
		return &CreateResult{RemoteID: remoteID, Warning: created.Warning},
			fmt.Errorf("wallet %s: %w", remoteID, common.ErrPartialFailure)
	}

	return &CreateResult{RemoteID: remoteID, Warning: created.Warning, Mnemonic: words}, nil
}

// List asks the node for every loaded wallet and keeps only the ones whose
// label carries the user's id prefix, with the prefix stripped. Zero
// matches is a normal outcome, not an error. Stored wallet records the node
// does not report are flagged in the log but never listed.
func (s *WalletService) List(ctx context.Context, user *models.User) ([]string, error) {

	result, err := s.node.Call(ctx, "listwallets")
	if err != nil {
		return nil, err
	}

	var remote []string
	if err := json.Unmarshal(result, &remote); err != nil {
		return nil, fmt.Errorf("decode listwallets result: %w", err)
	}

	loaded := make(map[string]bool, len(remote))
	var names []string
	for _, remoteID := range remote {
		loaded[remoteID] = true
		if name, ok := walletid.LocalName(user.ID, remoteID); ok {
			names = append(names, name)
		}
	}

	// Cross-check against the metadata store: a recorded wallet the node no
	// longer has loaded needs operator attention (it is recoverable from the
	// stored mnemonic). The check must not fail the listing itself.
	stored, err := s.repo.ListByUser(ctx, user.ID)
	if err != nil {
		s.logger.Warn(ctx, "wallet record check failed", "error", err.Error())
		return names, nil
	}
	for _, w := range stored {
		if !loaded[w.RemoteID] {
			s.logger.Warn(ctx, "wallet on record but not loaded on node",
				"remote_id", w.RemoteID)
		}
	}

	return names, nil
}

// Retrieve returns the node's wallet info for the user's wallet, unmodified.
func (s *WalletService) Retrieve(ctx context.Context, user *models.User, name string) (json.RawMessage, error) {
	remoteID := walletid.RemoteID(user.ID, name)
	return s.node.CallWallet(ctx, remoteID, "getwalletinfo")
}

// Send transfers amount to recipient from the user's named wallet and
// returns the transaction id. The subtractFee flag is passed through to the
// node untouched. An empty result reports common.ErrInsufficientFunds — the
// node answers a short balance with a falsy result rather than an error.
func (s *WalletService) Send(ctx context.Context, user *models.User, name string, amount float64, recipient string, subtractFee bool) (string, error) {

	remoteID := walletid.RemoteID(user.ID, name)

	result, err := s.node.CallWallet(ctx, remoteID, "sendtoaddress",
		recipient, amount, transferComment, " ", subtractFee, false)
	if err != nil {
		var rpcErr *node.RPCError
		if errors.As(err, &rpcErr) && rpcErr.Code == btcjson.ErrRPCWalletInsufficientFunds {
			return "", common.ErrInsufficientFunds
		}
		return "", err
	}

	if len(result) == 0 || bytes.Equal(result, jsonNull) {
		return "", common.ErrInsufficientFunds
	}

	var txid string
	if err := json.Unmarshal(result, &txid); err != nil {
		return "", fmt.Errorf("decode sendtoaddress result: %w", err)
	}
	if txid == "" {
		return "", common.ErrInsufficientFunds
	}

	return txid, nil
}
