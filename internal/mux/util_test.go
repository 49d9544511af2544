package mux

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cardtable-server/internal/config"
	"cardtable-server/internal/jwt"
	"cardtable-server/pkg/room"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func newTestMux(t *testing.T) *Mux {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.RNG.Crypto = false
	cfg.RNG.Seed = 1
	cfg.Roulette.SpinDuration = 50 * time.Millisecond

	logger, _ := test.NewNullLogger()
	pitBoss := room.NewPitBoss(cfg, logger)
	pitBoss.StartShift()
	t.Cleanup(pitBoss.EndShift)

	signer, err := jwt.NewSigner("secret", "cardtable")
	if err != nil {
		t.Fatal(err)
	}

	return NewMux("v1.2.3", pitBoss, signer)
}

func Test_remoteAddr(t *testing.T) {
	r := &http.Request{RemoteAddr: "127.0.0.1:5000"}
	assert.Equal(t, "127.0.0.1", remoteAddr(r))

	r.RemoteAddr = "[::1]:5000"
	assert.Equal(t, "[::1]", remoteAddr(r))

	r.RemoteAddr = "localhost"
	assert.Equal(t, "localhost", remoteAddr(r))
}

func Test_writeJSONError(t *testing.T) {
	a := assert.New(t)

	w := httptest.NewRecorder()
	writeJSONError(w, http.StatusBadRequest, errors.New("bad input"))
	a.Equal(http.StatusBadRequest, w.Code)
	a.JSONEq(`{"message":"bad input","statusCode":400}`, w.Body.String())

	w = httptest.NewRecorder()
	writeJSONError(w, http.StatusInternalServerError, errors.New("secret details"))
	a.Equal("application/json", w.Header().Get("Content-Type"))
	a.JSONEq(`{"message":"Internal Server Error","statusCode":500}`, w.Body.String())
}

func Test_writeDealerError(t *testing.T) {
	a := assert.New(t)

	w := httptest.NewRecorder()
	writeDealerError(w, room.ErrSessionEnded)
	a.Equal(http.StatusGone, w.Code)

	w = httptest.NewRecorder()
	writeDealerError(w, fmt.Errorf("wrapped: %w", context.DeadlineExceeded))
	a.Equal(http.StatusServiceUnavailable, w.Code)

	w = httptest.NewRecorder()
	writeDealerError(w, errors.New("invalid bet"))
	a.Equal(http.StatusBadRequest, w.Code)
}

func assertDo(t *testing.T, req *http.Request, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	if len(signedJWT) > 0 {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", signedJWT[0]))
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Error(err)
		return nil
	}
	defer resp.Body.Close()

	if statusCode != resp.StatusCode {
		b, _ := io.ReadAll(resp.Body)
		t.Log(string(b))
		assert.Equal(t, statusCode, resp.StatusCode)
		return nil
	}

	if respObj != nil {
		if err := json.NewDecoder(resp.Body).Decode(respObj); err != nil {
			t.Error(err)
			return nil
		}
	}

	return resp
}

func assertGet(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Error(err)
		return nil
	}

	return assertDo(t, req, respObj, statusCode, signedJWT...)
}

func assertDelete(t *testing.T, ts *httptest.Server, path string, statusCode int, signedJWT ...string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodDelete, ts.URL+path, nil)
	if err != nil {
		t.Error(err)
		return
	}

	assertDo(t, req, nil, statusCode, signedJWT...)
}

func assertPost(t *testing.T, ts *httptest.Server, path string, payload interface{}, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	var body io.Reader
	switch val := payload.(type) {
	case string:
		body = strings.NewReader(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			t.Error(err)
			return nil
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, body)
	if err != nil {
		t.Error(err)
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	return assertDo(t, req, respObj, statusCode, signedJWT...)
}
