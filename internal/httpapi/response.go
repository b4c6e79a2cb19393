package httpapi

import (
	"encoding/json"
	"net/http"
)

// User-facing message texts. These are part of the public contract; keep
// them stable.
const (
	msgBadCredentials    = "incorrect login credentials"
	msgConnectionError   = "Connection error occured. Please try again later"
	msgInternalError     = "Internal error. Please try again later"
	msgUsernameTaken     = "username taken"
	msgNoTransaction     = "No transaction found"
	msgWalletExists      = "Looks like you already have a wallet with this name."
	msgWalletUnrecorded  = "Your wallet was created but its recovery record could not be saved. Please contact support before using it."
	msgInsufficientFunds = "You likely have insufficient funds or passed in a mainnet address. To check your balance use the retrieve_wallet call"
	msgNoWallets         = "You don't have any wallets. Create one with the create_wallet command."
)

type messageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// writeRaw forwards a node payload unchanged.
func writeRaw(w http.ResponseWriter, code int, raw json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(raw)
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, messageResponse{Status: "error", Message: message})
}
