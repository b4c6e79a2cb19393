package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hobbleabbas/bapu-gateway/internal/common"
	"github.com/hobbleabbas/bapu-gateway/internal/logging"
	"github.com/hobbleabbas/bapu-gateway/internal/models"
	"github.com/hobbleabbas/bapu-gateway/internal/services"
)

type fakeUsers struct {
	registerFn func(username, password string) (*models.User, error)
	authFn     func(username, password string) (*models.User, error)
	loginFn    func(username, password string) (string, error)
	tokenFn    func(token string) (*models.User, error)
}

func (f *fakeUsers) Register(_ context.Context, username, password string) (*models.User, error) {
	return f.registerFn(username, password)
}

func (f *fakeUsers) Authenticate(_ context.Context, username, password string) (*models.User, error) {
	return f.authFn(username, password)
}

func (f *fakeUsers) Login(_ context.Context, username, password string) (string, error) {
	return f.loginFn(username, password)
}

func (f *fakeUsers) AuthenticateToken(_ context.Context, token string) (*models.User, error) {
	return f.tokenFn(token)
}

type fakeWallets struct {
	createFn   func(user *models.User, name string) (*services.CreateResult, error)
	listFn     func(user *models.User) ([]string, error)
	retrieveFn func(user *models.User, name string) (json.RawMessage, error)
	sendFn     func(user *models.User, name string, amount float64, recipient string, subtractFee bool) (string, error)
}

func (f *fakeWallets) Create(_ context.Context, user *models.User, name string) (*services.CreateResult, error) {
	return f.createFn(user, name)
}

func (f *fakeWallets) List(_ context.Context, user *models.User) ([]string, error) {
	return f.listFn(user)
}

func (f *fakeWallets) Retrieve(_ context.Context, user *models.User, name string) (json.RawMessage, error) {
	return f.retrieveFn(user, name)
}

func (f *fakeWallets) Send(_ context.Context, user *models.User, name string, amount float64, recipient string, subtractFee bool) (string, error) {
	return f.sendFn(user, name, amount, recipient, subtractFee)
}

type fakeTransactions struct {
	getFn func(txid string, full bool) (*services.TransactionLookup, error)
}

func (f *fakeTransactions) Get(_ context.Context, txid string, full bool) (*services.TransactionLookup, error) {
	return f.getFn(txid, full)
}

type fakeRecorder struct {
	lines []string
}

func (f *fakeRecorder) Record(message string) error {
	f.lines = append(f.lines, message)
	return nil
}

// okAuth accepts alice/secret and the token "tok".
func okAuth() *fakeUsers {
	alice := &models.User{ID: "user-1", Username: "alice"}
	return &fakeUsers{
		authFn: func(username, password string) (*models.User, error) {
			if username == "alice" && password == "secret" {
				return alice, nil
			}
			return nil, common.ErrWrongCredentials
		},
		tokenFn: func(token string) (*models.User, error) {
			if token == "tok" {
				return alice, nil
			}
			return nil, common.ErrInvalidToken
		},
	}
}

func newTestServer(users *fakeUsers, wallets *fakeWallets, tx *fakeTransactions, rec *fakeRecorder) *Server {
	if rec == nil {
		rec = &fakeRecorder{}
	}
	return &Server{
		users:        users,
		wallets:      wallets,
		transactions: tx,
		failures:     rec,
		logger:       logging.NopLogger{},
	}
}

func do(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func TestCreateAccount(t *testing.T) {
	users := okAuth()
	users.registerFn = func(username, password string) (*models.User, error) {
		return &models.User{ID: "user-1", Username: username}, nil
	}
	s := newTestServer(users, nil, nil, nil)

	w := do(t, s, "/create_account", `{"username":"alice","password":"secret"}`)
	require.Equal(t, http.StatusOK, w.Code)
	m := decodeResponse(t, w)
	require.Equal(t, "success", m["status"])
	require.Equal(t, "Thanks for creating your account, alice!", m["message"])
}

func TestCreateAccount_UsernameTaken(t *testing.T) {
	users := okAuth()
	users.registerFn = func(username, password string) (*models.User, error) {
		return nil, common.ErrConflict
	}
	s := newTestServer(users, nil, nil, nil)

	w := do(t, s, "/create_account", `{"username":"alice","password":"secret"}`)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, msgUsernameTaken, decodeResponse(t, w)["message"])
}

func TestCreateAccount_MissingParameter(t *testing.T) {
	s := newTestServer(okAuth(), nil, nil, nil)

	w := do(t, s, "/create_account", `{"username":"alice"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "incomplete parameters. please pass in the password parameter.",
		decodeResponse(t, w)["message"])
}

func TestCreateAccount_WrongMethod(t *testing.T) {
	s := newTestServer(okAuth(), nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/create_account", nil)
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestLogin(t *testing.T) {
	users := okAuth()
	users.loginFn = func(username, password string) (string, error) {
		if username == "alice" && password == "secret" {
			return "tok", nil
		}
		return "", common.ErrWrongCredentials
	}
	s := newTestServer(users, nil, nil, nil)

	w := do(t, s, "/login", `{"username":"alice","password":"secret"}`)
	require.Equal(t, http.StatusOK, w.Code)
	m := decodeResponse(t, w)
	require.Equal(t, "success", m["status"])
	require.Equal(t, "tok", m["access_token"])
}

func TestLogin_FailuresReadTheSame(t *testing.T) {
	users := okAuth()
	cases := map[string]error{
		"unknown user":   common.ErrUserNotFound,
		"wrong password": common.ErrWrongCredentials,
	}
	for name, authErr := range cases {
		t.Run(name, func(t *testing.T) {
			users.loginFn = func(username, password string) (string, error) {
				return "", authErr
			}
			s := newTestServer(users, nil, nil, nil)

			w := do(t, s, "/login", `{"username":"alice","password":"x"}`)
			require.Equal(t, http.StatusUnauthorized, w.Code)
			require.Equal(t, msgBadCredentials, decodeResponse(t, w)["message"])
		})
	}
}

func TestGetTransaction_Summary(t *testing.T) {
	tx := &fakeTransactions{
		getFn: func(txid string, full bool) (*services.TransactionLookup, error) {
			require.Equal(t, "abc123", txid)
			require.False(t, full)
			return &services.TransactionLookup{Summary: &models.TransactionSummary{
				TxID:             "abc123",
				TransactionValue: 1.5,
			}}, nil
		},
	}
	s := newTestServer(okAuth(), nil, tx, nil)

	w := do(t, s, "/get_transaction", `{"txn_number":"abc123","full":false}`)
	require.Equal(t, http.StatusOK, w.Code)
	m := decodeResponse(t, w)
	require.Equal(t, "success", m["status"])
	details := m["transaction_details"].(map[string]any)
	require.Equal(t, "abc123", details["txid"])
}

func TestGetTransaction_FullIsRequired(t *testing.T) {
	tx := &fakeTransactions{
		getFn: func(txid string, full bool) (*services.TransactionLookup, error) {
			t.Fatal("service must not be reached without the full parameter")
			return nil, nil
		},
	}
	s := newTestServer(okAuth(), nil, tx, nil)

	w := do(t, s, "/get_transaction", `{"txn_number":"abc123"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "incomplete parameters. please pass in the full parameter.",
		decodeResponse(t, w)["message"])
}

func TestGetTransaction_FullPassthrough(t *testing.T) {
	raw := `{"txid":"abc123","hex":"00ff"}`
	tx := &fakeTransactions{
		getFn: func(txid string, full bool) (*services.TransactionLookup, error) {
			require.True(t, full)
			return &services.TransactionLookup{Raw: json.RawMessage(raw)}, nil
		},
	}
	s := newTestServer(okAuth(), nil, tx, nil)

	w := do(t, s, "/get_transaction", `{"txn_number":"abc123","full":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, raw, w.Body.String())
}

func TestGetTransaction_NotFound(t *testing.T) {
	tx := &fakeTransactions{
		getFn: func(txid string, full bool) (*services.TransactionLookup, error) {
			return nil, common.ErrNotFound
		},
	}
	s := newTestServer(okAuth(), nil, tx, nil)

	w := do(t, s, "/get_transaction", `{"txn_number":"nope","full":false}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, msgNoTransaction, decodeResponse(t, w)["message"])
}

func TestGetTransaction_NodeFailureIsRecorded(t *testing.T) {
	tx := &fakeTransactions{
		getFn: func(txid string, full bool) (*services.TransactionLookup, error) {
			return nil, errors.New("connection refused")
		},
	}
	rec := &fakeRecorder{}
	s := newTestServer(okAuth(), nil, tx, rec)

	w := do(t, s, "/get_transaction", `{"txn_number":"abc","full":false}`)
	require.Equal(t, http.StatusBadGateway, w.Code)
	require.Equal(t, msgConnectionError, decodeResponse(t, w)["message"])
	require.Len(t, rec.lines, 1)
	require.Contains(t, rec.lines[0], "get_transaction")
}

func TestCreateWallet(t *testing.T) {
	wallets := &fakeWallets{
		createFn: func(user *models.User, name string) (*services.CreateResult, error) {
			require.Equal(t, "user-1", user.ID)
			require.Equal(t, "savings", name)
			return &services.CreateResult{
				RemoteID: "user-1_savings",
				Mnemonic: []string{"alpha", "bravo", "charlie"},
			}, nil
		},
	}
	s := newTestServer(okAuth(), wallets, nil, nil)

	w := do(t, s, "/create_wallet", `{"username":"alice","password":"secret","name":"savings"}`)
	require.Equal(t, http.StatusOK, w.Code)
	m := decodeResponse(t, w)
	require.Equal(t, "success", m["status"])
	require.Equal(t, "alpha bravo charlie", m["mnemonic"])
	require.Equal(t, "Wallet 'savings' created successfully. Your mneumonic is alpha bravo charlie. Please keep this phrase safe, as you'll need it to access your wallet.", m["message"])
}

func TestCreateWallet_WithWarning(t *testing.T) {
	wallets := &fakeWallets{
		createFn: func(user *models.User, name string) (*services.CreateResult, error) {
			return &services.CreateResult{
				RemoteID: "user-1_savings",
				Warning:  "Empty string given as passphrase",
				Mnemonic: []string{"alpha", "bravo"},
			}, nil
		},
	}
	s := newTestServer(okAuth(), wallets, nil, nil)

	w := do(t, s, "/create_wallet", `{"access_token":"tok","name":"savings"}`)
	require.Equal(t, http.StatusOK, w.Code)
	m := decodeResponse(t, w)
	require.Contains(t, m["message"], "with a warning: Empty string given as passphrase")
}

func TestCreateWallet_AlreadyExists(t *testing.T) {
	wallets := &fakeWallets{
		createFn: func(user *models.User, name string) (*services.CreateResult, error) {
			return nil, common.ErrWalletExists
		},
	}
	s := newTestServer(okAuth(), wallets, nil, nil)

	w := do(t, s, "/create_wallet", `{"username":"alice","password":"secret","name":"savings"}`)
	require.Equal(t, http.StatusConflict, w.Code)
	m := decodeResponse(t, w)
	require.Equal(t, "error", m["status"])
	require.Equal(t, msgWalletExists, m["message"])
	require.NotContains(t, m, "mnemonic")
}

func TestCreateWallet_PartialFailure(t *testing.T) {
	wallets := &fakeWallets{
		createFn: func(user *models.User, name string) (*services.CreateResult, error) {
			return &services.CreateResult{RemoteID: "user-1_savings"},
				common.ErrPartialFailure
		},
	}
	rec := &fakeRecorder{}
	s := newTestServer(okAuth(), wallets, nil, rec)

	w := do(t, s, "/create_wallet", `{"username":"alice","password":"secret","name":"savings"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	m := decodeResponse(t, w)
	require.Equal(t, msgWalletUnrecorded, m["message"])
	require.NotContains(t, m, "mnemonic")
	require.Len(t, rec.lines, 1)
}

func TestCreateWallet_BadToken(t *testing.T) {
	s := newTestServer(okAuth(), nil, nil, nil)

	w := do(t, s, "/create_wallet", `{"access_token":"bad","name":"savings"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, msgBadCredentials, decodeResponse(t, w)["message"])
}

func TestRetrieveWallet(t *testing.T) {
	wallets := &fakeWallets{
		retrieveFn: func(user *models.User, name string) (json.RawMessage, error) {
			require.Equal(t, "savings", name)
			return json.RawMessage(`{"walletname":"user-1_savings","balance":0.5}`), nil
		},
	}
	s := newTestServer(okAuth(), wallets, nil, nil)

	w := do(t, s, "/retrieve_wallet", `{"username":"alice","password":"secret","name":"savings"}`)
	require.Equal(t, http.StatusOK, w.Code)
	m := decodeResponse(t, w)
	require.Equal(t, "success", m["status"])
	details := m["wallet_details"].(map[string]any)
	require.Equal(t, 0.5, details["balance"])
}

func TestListWallets(t *testing.T) {
	wallets := &fakeWallets{
		listFn: func(user *models.User) ([]string, error) {
			return []string{"savings", "spending"}, nil
		},
	}
	s := newTestServer(okAuth(), wallets, nil, nil)

	w := do(t, s, "/list_wallets", `{"username":"alice","password":"secret"}`)
	require.Equal(t, http.StatusOK, w.Code)
	m := decodeResponse(t, w)
	require.Equal(t, float64(2), m["number_of_wallets"])
	require.Equal(t, "You have 2 wallet(s) in your account. Your wallets: 'savings' 'spending' ", m["message"])
}

func TestListWallets_Empty(t *testing.T) {
	wallets := &fakeWallets{
		listFn: func(user *models.User) ([]string, error) {
			return nil, nil
		},
	}
	s := newTestServer(okAuth(), wallets, nil, nil)

	w := do(t, s, "/list_wallets", `{"username":"alice","password":"secret"}`)
	require.Equal(t, http.StatusOK, w.Code)
	m := decodeResponse(t, w)
	require.Equal(t, float64(0), m["number_of_wallets"])
	require.Equal(t, msgNoWallets, m["message"])
}

func TestSendCoins(t *testing.T) {
	wallets := &fakeWallets{
		sendFn: func(user *models.User, name string, amount float64, recipient string, subtractFee bool) (string, error) {
			require.Equal(t, "main", name)
			require.Equal(t, 0.25, amount)
			require.Equal(t, "bc1qdest", recipient)
			require.True(t, subtractFee)
			return "txid-abc", nil
		},
	}
	s := newTestServer(okAuth(), wallets, nil, nil)

	w := do(t, s, "/send_coins", `{"username":"alice","password":"secret","wallet":"main","amount":0.25,"recipient_address":"bc1qdest","fees":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	m := decodeResponse(t, w)
	require.Equal(t, "success", m["status"])
	require.Equal(t, "txid-abc", m["transaction_id"])
}

func TestSendCoins_AmountAsString(t *testing.T) {
	wallets := &fakeWallets{
		sendFn: func(user *models.User, name string, amount float64, recipient string, subtractFee bool) (string, error) {
			require.Equal(t, 0.25, amount)
			return "txid-abc", nil
		},
	}
	s := newTestServer(okAuth(), wallets, nil, nil)

	w := do(t, s, "/send_coins", `{"username":"alice","password":"secret","wallet":"main","amount":"0.25","recipient_address":"bc1qdest","fees":false}`)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestSendCoins_InsufficientFunds(t *testing.T) {
	wallets := &fakeWallets{
		sendFn: func(user *models.User, name string, amount float64, recipient string, subtractFee bool) (string, error) {
			return "", common.ErrInsufficientFunds
		},
	}
	s := newTestServer(okAuth(), wallets, nil, nil)

	w := do(t, s, "/send_coins", `{"username":"alice","password":"secret","wallet":"main","amount":10,"recipient_address":"bc1qdest","fees":false}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, msgInsufficientFunds, decodeResponse(t, w)["message"])
}

func TestSendCoins_FeesMustBeBoolean(t *testing.T) {
	s := newTestServer(okAuth(), nil, nil, nil)

	w := do(t, s, "/send_coins", `{"username":"alice","password":"secret","wallet":"main","amount":1,"recipient_address":"bc1qdest","fees":"yes"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Please pass in the fees parameter as a boolean", decodeResponse(t, w)["message"])
}
