package mux

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"stackandsteal-server/pkg/playable/stacksteal"
	"stackandsteal-server/pkg/room"
)

var statusOK = map[string]string{
	"status": "OK",
}

func decodeRequest(w http.ResponseWriter, r *http.Request, payload interface{}) bool {
	if ct := r.Header.Get("Content-Type"); ct != "application/json" && ct != "text/json" {
		writeJSONError(w, http.StatusUnsupportedMediaType, nil)
		return false
	}

	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, err)
		return false
	}

	return true
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("could not write JSON response")
	}
}

type errorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Code       string `json:"code,omitempty"`
}

// statusCodeForError maps room and game errors to an HTTP status code
func statusCodeForError(err error) int {
	if u, ok := room.IsUserError(err); ok {
		switch u {
		case room.ErrRoomNotFound, room.ErrRoomClosed:
			return http.StatusNotFound
		case room.ErrNotHost, room.ErrNotSeated:
			return http.StatusForbidden
		default:
			return http.StatusConflict
		}
	}

	switch {
	case errors.Is(err, stacksteal.ErrNotYourTurn),
		errors.Is(err, stacksteal.ErrStaleAction),
		errors.Is(err, stacksteal.ErrMatchFinished):
		return http.StatusConflict
	case stacksteal.IsValidationError(err):
		return http.StatusBadRequest
	}

	var pce stacksteal.PlayerCountError
	if errors.As(err, &pce) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

func writeRoomError(w http.ResponseWriter, err error) {
	statusCode := statusCodeForError(err)
	if u, ok := room.IsUserError(err); ok {
		writeJSON(w, statusCode, errorResponse{
			Message:    u.Error(),
			StatusCode: statusCode,
			Code:       u.Code(),
		})
		return
	}

	writeJSONError(w, statusCode, err)
}

func writeJSONError(w http.ResponseWriter, statusCode int, err error) {
	var msg string

	if statusCode < 500 && err != nil {
		msg = err.Error()
	} else {
		msg = http.StatusText(statusCode)
	}

	if statusCode >= 500 {
		logrus.WithField("statusCode", statusCode).Error(err)
	}

	writeJSON(w, statusCode, errorResponse{
		Message:    msg,
		StatusCode: statusCode,
	})
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

func assertDelete(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodDelete, ts.URL+path, nil)
	if err != nil {
		t.Error(err)
		return nil
	}

	return assertDo(t, req, respObj, statusCode, signedJWT...)
}

func assertPost(t *testing.T, ts *httptest.Server, path string, payload interface{}, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	var body io.Reader
	switch val := payload.(type) {
	case nil:
		body = http.NoBody
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
