package mux

import (
	"context"
	"net/http"
	"strings"

	"cardtable-server/internal/jwt"
	"cardtable-server/pkg/room"
	gmux "github.com/gorilla/mux"
)

type ctxKey int

const (
	ctxDealerKey ctxKey = iota
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	pitBoss *room.PitBoss
	signer  *jwt.Signer

	// store for testing purposes
	authRouter *gmux.Router
}

// NewMux returns a new HTTP mux
func NewMux(version string, pitBoss *room.PitBoss, signer *jwt.Signer) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		pitBoss: pitBoss,
		signer:  signer,
	}

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodGet).Path("/game").Handler(this.getGame())
		r.Methods(http.MethodPost).Path("/session").Handler(this.postSession())
	}

	// requires a token issued for the session
	{
		r := this.Router.PathPrefix("/session/{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
		r.Use(this.authMiddleware)
		this.authRouter = r

		r.Methods(http.MethodGet).Path("").Handler(this.getSessionUUID())
		r.Methods(http.MethodDelete).Path("").Handler(this.deleteSessionUUID())
		r.Methods(http.MethodPost).Path("/action").Handler(this.postSessionUUIDAction())
		r.Methods(http.MethodGet).Path("/ws").Handler(this.getSessionUUIDWS())
	}

	return this
}

// authMiddleware validates the token and loads the dealer for the session
func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		sessionUUID, err := m.signer.ValidSessionUUID(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		if !strings.EqualFold(sessionUUID, gmux.Vars(r)["uuid"]) {
			writeJSONError(w, http.StatusForbidden, nil)
			return
		}

		dealer, err := m.pitBoss.Dealer(sessionUUID)
		if err != nil {
			writeJSONError(w, http.StatusNotFound, err)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxDealerKey, dealer)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}
