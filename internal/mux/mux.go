package mux

import (
	"context"
	"net/http"
	"strings"

	gmux "github.com/gorilla/mux"
	"stackandsteal-server/internal/jwt"
	"stackandsteal-server/pkg/room"
)

type ctxKey int

const (
	ctxSeatKey ctxKey = iota
)

// seatHeader is set on every authenticated response
const seatHeader = "StackAndSteal-SeatID"

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	pitBoss *room.PitBoss

	// store for testing purposes
	seatRouter *gmux.Router
}

// NewMux returns a new HTTP mux
func NewMux(version string, pitBoss *room.PitBoss) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		pitBoss: pitBoss,
	}

	this.seatRouter = this.Router.NewRoute().Subrouter()
	this.seatRouter.Use(this.seatMiddleware)

	roomPath := "/room/{id:[A-Za-z0-9]{6}}"

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodPost).Path("/room").Handler(this.postRoom())
		r.Methods(http.MethodGet).Path(roomPath).Handler(this.getRoomID())
		r.Methods(http.MethodPost).Path(roomPath + "/seat").Handler(this.postRoomIDSeat())
	}

	// requires a seat token for the room in the path
	{
		r := this.seatRouter
		r.Methods(http.MethodDelete).Path(roomPath + "/seat").Handler(this.deleteRoomIDSeat())
		r.Methods(http.MethodPost).Path(roomPath + "/bot").Handler(this.postRoomIDBot())
		r.Methods(http.MethodPost).Path(roomPath + "/start").Handler(this.postRoomIDStart())
		r.Methods(http.MethodPost).Path(roomPath + "/action").Handler(this.postRoomIDAction())
		r.Methods(http.MethodGet).Path(roomPath + "/ws").Handler(this.getRoomIDWS())
	}

	return this
}

// seatToken returns the token from the access_token parameter or the bearer authorization header
func seatToken(r *http.Request) string {
	if token := r.FormValue("access_token"); token != "" {
		return token
	}

	authHeader := strings.Split(r.Header.Get("Authorization"), " ")
	if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
		return ""
	}

	return authHeader[1]
}

// authenticate returns the seat the token was issued for, if it was issued for the room in the path
func authenticate(r *http.Request) (string, bool) {
	token := seatToken(r)
	if token == "" {
		return "", false
	}

	roomID, seatID, err := jwt.ValidSeat(token)
	if err != nil {
		return "", false
	}

	if !strings.EqualFold(roomID, gmux.Vars(r)["id"]) {
		return "", false
	}

	return seatID, true
}

func (m *Mux) seatMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seatID, ok := authenticate(r)
		if !ok {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxSeatKey, seatID)
		w.Header().Set(seatHeader, seatID)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

// seatID returns the authenticated seat, requires seatMiddleware
func seatID(r *http.Request) string {
	id, _ := r.Context().Value(ctxSeatKey).(string)
	return id
}
