package mux

import (
	"net/http"

	"cardtable-server/pkg/playable"
	"cardtable-server/pkg/room"
)

type postSessionPayload struct {
	Game           string                  `json:"game"`
	Variant        string                  `json:"variant"`
	AdditionalData playable.AdditionalData `json:"additionalData"`
}

type postSessionResponse struct {
	*room.Session
	Token string             `json:"token"`
	State *playable.Response `json:"state"`
}

func (m *Mux) postSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postSessionPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		data := make(playable.AdditionalData, len(pp.AdditionalData)+1)
		for k, v := range pp.AdditionalData {
			data[k] = v
		}

		if pp.Variant != "" {
			data["variant"] = pp.Variant
		}

		dealer, err := m.pitBoss.CreateSession(pp.Game, data)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		token, err := m.signer.Sign(dealer.Session().UUID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		state, err := dealer.State(r.Context())
		if err != nil {
			writeDealerError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, postSessionResponse{
			Session: dealer.Session(),
			Token:   token,
			State:   state,
		})
	}
}

type getSessionUUIDResponse struct {
	*room.Session
	State *playable.Response `json:"state"`
}

func (m *Mux) getSessionUUID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dealer := r.Context().Value(ctxDealerKey).(*room.Dealer)
		state, err := dealer.State(r.Context())
		if err != nil {
			writeDealerError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, getSessionUUIDResponse{
			Session: dealer.Session(),
			State:   state,
		})
	}
}

func (m *Mux) deleteSessionUUID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dealer := r.Context().Value(ctxDealerKey).(*room.Dealer)
		if err := m.pitBoss.EndSession(dealer.Session().UUID); err != nil {
			writeJSONError(w, http.StatusNotFound, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

type postSessionUUIDActionResponse struct {
	Response *playable.Response `json:"response"`
	State    *playable.Response `json:"state"`
}

func (m *Mux) postSessionUUIDAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var msg playable.PayloadIn
		if !decodeRequest(w, r, &msg) {
			return
		}

		dealer := r.Context().Value(ctxDealerKey).(*room.Dealer)
		res, err := dealer.Action(r.Context(), &msg)
		if err != nil {
			writeDealerError(w, err)
			return
		}

		state, err := dealer.State(r.Context())
		if err != nil {
			writeDealerError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, postSessionUUIDActionResponse{
			Response: res,
			State:    state,
		})
	}
}
