package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/hobbleabbas/bapu-gateway/internal/common"
	"github.com/hobbleabbas/bapu-gateway/internal/models"
)

// writeRequestError renders a body/validation problem as a 400.
func writeRequestError(w http.ResponseWriter, err error) {
	var v *common.ValidationError
	if errors.As(err, &v) {
		writeError(w, http.StatusBadRequest, v.Error())
		return
	}
	writeError(w, http.StatusBadRequest, errBadBody.Error())
}

// recordFailure logs a node/store failure and appends it to the durable
// error record for later reconciliation.
func (s *Server) recordFailure(ctx context.Context, op string, err error) {
	s.logger.Error(ctx, "request failed", "op", op, "error", err.Error())
	if recErr := s.failures.Record(op + ": " + err.Error()); recErr != nil {
		s.logger.Error(ctx, "error record write failed", "error", recErr.Error())
	}
}

// authenticate resolves the caller from the request body: an access_token
// field when present, a username/password pair otherwise.
func (s *Server) authenticate(ctx context.Context, b requestBody) (*models.User, error) {
	if _, ok := b["access_token"]; ok {
		token, err := b.stringField("access_token")
		if err != nil {
			return nil, err
		}
		return s.users.AuthenticateToken(ctx, token)
	}

	username, err := b.stringField("username")
	if err != nil {
		return nil, err
	}
	password, err := b.stringField("password")
	if err != nil {
		return nil, err
	}
	return s.users.Authenticate(ctx, username, password)
}

// writeAuthError maps an authentication failure to a response. Unknown user,
// wrong password and bad token all read the same so the response does not
// reveal which half failed.
func writeAuthError(w http.ResponseWriter, err error) {
	var v *common.ValidationError
	switch {
	case errors.As(err, &v):
		writeError(w, http.StatusBadRequest, v.Error())
	case errors.Is(err, common.ErrUserNotFound),
		errors.Is(err, common.ErrWrongCredentials),
		errors.Is(err, common.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, msgBadCredentials)
	default:
		writeError(w, http.StatusInternalServerError, msgInternalError)
	}
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	b, err := decodeBody(r)
	if err != nil {
		writeRequestError(w, err)
		return
	}
	username, err := b.stringField("username")
	if err != nil {
		writeRequestError(w, err)
		return
	}
	password, err := b.stringField("password")
	if err != nil {
		writeRequestError(w, err)
		return
	}

	if _, err := s.users.Register(r.Context(), username, password); err != nil {
		if errors.Is(err, common.ErrConflict) {
			writeError(w, http.StatusConflict, msgUsernameTaken)
			return
		}
		s.logger.Error(r.Context(), "account creation failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Status:  "success",
		Message: fmt.Sprintf("Thanks for creating your account, %s!", username),
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	b, err := decodeBody(r)
	if err != nil {
		writeRequestError(w, err)
		return
	}
	username, err := b.stringField("username")
	if err != nil {
		writeRequestError(w, err)
		return
	}
	password, err := b.stringField("password")
	if err != nil {
		writeRequestError(w, err)
		return
	}

	token, err := s.users.Login(r.Context(), username, password)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Status      string `json:"status"`
		AccessToken string `json:"access_token"`
	}{Status: "success", AccessToken: token})
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	b, err := decodeBody(r)
	if err != nil {
		writeRequestError(w, err)
		return
	}
	txid, err := b.stringField("txn_number")
	if err != nil {
		writeRequestError(w, err)
		return
	}
	full, err := b.boolField("full")
	if err != nil {
		writeRequestError(w, err)
		return
	}

	lookup, err := s.transactions.Get(r.Context(), txid, full)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeError(w, http.StatusNotFound, msgNoTransaction)
			return
		}
		s.recordFailure(r.Context(), "get_transaction", err)
		writeError(w, http.StatusBadGateway, msgConnectionError)
		return
	}

	if lookup.Raw != nil {
		writeRaw(w, http.StatusOK, lookup.Raw)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Status             string                     `json:"status"`
		TransactionDetails *models.TransactionSummary `json:"transaction_details"`
	}{Status: "success", TransactionDetails: lookup.Summary})
}

func (s *Server) handleCreateWallet(w http.ResponseWriter, r *http.Request) {
	b, err := decodeBody(r)
	if err != nil {
		writeRequestError(w, err)
		return
	}
	name, err := b.stringField("name")
	if err != nil {
		writeRequestError(w, err)
		return
	}

	user, err := s.authenticate(r.Context(), b)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	created, err := s.wallets.Create(r.Context(), user, name)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrWalletExists):
		writeJSON(w, http.StatusConflict, createWalletResponse{
			Status:  "error",
			Message: msgWalletExists,
		})
		return
	case errors.Is(err, common.ErrPartialFailure):
		// The remote wallet exists but the mnemonic record does not; the
		// caller must hear about it, not get a success with a mnemonic we
		// failed to save.
		s.recordFailure(r.Context(), "create_wallet", err)
		writeJSON(w, http.StatusInternalServerError, createWalletResponse{
			Status:  "error",
			Message: msgWalletUnrecorded,
		})
		return
	default:
		s.recordFailure(r.Context(), "create_wallet", err)
		writeError(w, http.StatusBadGateway, msgConnectionError)
		return
	}

	phrase := strings.Join(created.Mnemonic, " ")
	message := fmt.Sprintf("Wallet '%s' created successfully. Your mneumonic is %s. Please keep this phrase safe, as you'll need it to access your wallet.", name, phrase)
	if created.Warning != "" {
		message = fmt.Sprintf("Wallet created successfully, with a warning: %s. Your mneumonic is %s. Please keep this phrase safe, as you'll need it to access your wallet.", created.Warning, phrase)
	}

	writeJSON(w, http.StatusOK, createWalletResponse{
		Status:   "success",
		Message:  message,
		Mnemonic: phrase,
	})
}

type createWalletResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Mnemonic string `json:"mnemonic,omitempty"`
}

func (s *Server) handleRetrieveWallet(w http.ResponseWriter, r *http.Request) {
	b, err := decodeBody(r)
	if err != nil {
		writeRequestError(w, err)
		return
	}
	name, err := b.stringField("name")
	if err != nil {
		writeRequestError(w, err)
		return
	}

	user, err := s.authenticate(r.Context(), b)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	info, err := s.wallets.Retrieve(r.Context(), user, name)
	if err != nil {
		s.recordFailure(r.Context(), "retrieve_wallet", err)
		writeError(w, http.StatusBadGateway, msgConnectionError)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Status        string          `json:"status"`
		WalletDetails json.RawMessage `json:"wallet_details"`
	}{Status: "success", WalletDetails: info})
}

func (s *Server) handleListWallets(w http.ResponseWriter, r *http.Request) {
	b, err := decodeBody(r)
	if err != nil {
		writeRequestError(w, err)
		return
	}

	user, err := s.authenticate(r.Context(), b)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	names, err := s.wallets.List(r.Context(), user)
	if err != nil {
		s.recordFailure(r.Context(), "list_wallets", err)
		writeError(w, http.StatusBadGateway, msgConnectionError)
		return
	}

	message := msgNoWallets
	if len(names) > 0 {
		var sb strings.Builder
		for _, name := range names {
			fmt.Fprintf(&sb, "'%s' ", name)
		}
		message = fmt.Sprintf("You have %d wallet(s) in your account. Your wallets: %s", len(names), sb.String())
	}

	writeJSON(w, http.StatusOK, struct {
		Status          string `json:"status"`
		Message         string `json:"message"`
		NumberOfWallets int    `json:"number_of_wallets"`
	}{Status: "success", Message: message, NumberOfWallets: len(names)})
}

func (s *Server) handleSendCoins(w http.ResponseWriter, r *http.Request) {
	b, err := decodeBody(r)
	if err != nil {
		writeRequestError(w, err)
		return
	}
	wallet, err := b.stringField("wallet")
	if err != nil {
		writeRequestError(w, err)
		return
	}
	amount, err := b.amountField("amount")
	if err != nil {
		writeRequestError(w, err)
		return
	}
	recipient, err := b.stringField("recipient_address")
	if err != nil {
		writeRequestError(w, err)
		return
	}
	fees, err := b.boolField("fees")
	if err != nil {
		writeRequestError(w, err)
		return
	}

	user, err := s.authenticate(r.Context(), b)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	txid, err := s.wallets.Send(r.Context(), user, wallet, amount, recipient, fees)
	if err != nil {
		if errors.Is(err, common.ErrInsufficientFunds) {
			writeError(w, http.StatusBadRequest, msgInsufficientFunds)
			return
		}
		s.recordFailure(r.Context(), "send_coins", err)
		writeError(w, http.StatusBadGateway, msgConnectionError)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Status        string `json:"status"`
		TransactionID string `json:"transaction_id"`
	}{Status: "success", TransactionID: txid})
}
