// Package httpapi exposes the gateway over HTTP. Every endpoint is a POST
// taking a JSON body and answering a JSON body; handlers validate input,
// delegate to the services, and map errors to stable user-facing messages.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hobbleabbas/bapu-gateway/internal/logging"
	"github.com/hobbleabbas/bapu-gateway/internal/models"
	"github.com/hobbleabbas/bapu-gateway/internal/services"
)

// Narrow views of the services, so handler tests can fake them.
type userAuthenticator interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	AuthenticateToken(ctx context.Context, token string) (*models.User, error)
}

type walletProvider interface {
	Create(ctx context.Context, user *models.User, name string) (*services.CreateResult, error)
	List(ctx context.Context, user *models.User) ([]string, error)
	Retrieve(ctx context.Context, user *models.User, name string) (json.RawMessage, error)
	Send(ctx context.Context, user *models.User, name string, amount float64, recipient string, subtractFee bool) (string, error)
}

type transactionProvider interface {
	Get(ctx context.Context, txid string, full bool) (*services.TransactionLookup, error)
}

type failureRecorder interface {
	Record(message string) error
}

type Server struct {
	address      string
	users        userAuthenticator
	wallets      walletProvider
	transactions transactionProvider
	failures     failureRecorder
	logger       logging.Logger
}

func NewServer(address string, users *services.UserService, wallets *services.WalletService,
	transactions *services.TransactionService, failures failureRecorder, logger logging.Logger) *Server {
	return &Server{
		address:      address,
		users:        users,
		wallets:      wallets,
		transactions: transactions,
		failures:     failures,
		logger:       logger.With("module", "httpapi"),
	}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/create_account", s.post(s.handleCreateAccount))
	mux.HandleFunc("/login", s.post(s.handleLogin))
	mux.HandleFunc("/get_transaction", s.post(s.handleGetTransaction))
	mux.HandleFunc("/create_wallet", s.post(s.handleCreateWallet))
	mux.HandleFunc("/retrieve_wallet", s.post(s.handleRetrieveWallet))
	mux.HandleFunc("/list_wallets", s.post(s.handleListWallets))
	mux.HandleFunc("/send_coins", s.post(s.handleSendCoins))
	return mux
}

func (s *Server) post(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed, use POST")
			return
		}
		h(w, r)
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server starting", "address", s.address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "http server stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
