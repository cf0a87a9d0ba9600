package mux

import (
	"net/http"
	"strings"

	gmux "github.com/gorilla/mux"
	"stackandsteal-server/internal/jwt"
	"stackandsteal-server/pkg/playable"
	"stackandsteal-server/pkg/room"
)

type postRoomResponse struct {
	RoomID string `json:"roomId"`
}

type postSeatResponse struct {
	SeatID string              `json:"seatId"`
	Token  string              `json:"token"`
	Seats  []*room.SeatSummary `json:"seats"`
}

func (m *Mux) postRoom() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var opts room.RoomOptions
		if r.ContentLength != 0 && !decodeRequest(w, r, &opts) {
			return
		}

		d, err := m.pitBoss.CreateRoom(opts)
		if err != nil {
			writeRoomError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, postRoomResponse{RoomID: d.ID()})
	}
}

// getRoomID returns the room view, the caller's own hand is included when it sends its seat token
func (m *Mux) getRoomID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seatID, _ := authenticate(r)

		view, err := m.pitBoss.RoomView(r.Context(), gmux.Vars(r)["id"], seatID)
		if err != nil {
			writeRoomError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, view)
	}
}

func (m *Mux) postRoomIDSeat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var info room.PlayerInfo
		if !decodeRequest(w, r, &info) {
			return
		}

		roomID := gmux.Vars(r)["id"]
		joined, seats, err := m.pitBoss.JoinRoom(r.Context(), roomID, info)
		if err != nil {
			writeRoomError(w, err)
			return
		}

		token, err := jwt.Sign(strings.ToUpper(roomID), joined.ID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, postSeatResponse{
			SeatID: joined.ID,
			Token:  token,
			Seats:  seats,
		})
	}
}

func (m *Mux) deleteRoomIDSeat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := m.pitBoss.RemovePlayer(r.Context(), gmux.Vars(r)["id"], seatID(r)); err != nil {
			writeRoomError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, statusOK)
	}
}

func (m *Mux) postRoomIDBot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		added, err := m.pitBoss.AddBot(r.Context(), gmux.Vars(r)["id"], seatID(r))
		if err != nil {
			writeRoomError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, added)
	}
}

func (m *Mux) postRoomIDStart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := m.pitBoss.StartMatch(r.Context(), gmux.Vars(r)["id"], seatID(r))
		if err != nil {
			writeRoomError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, view)
	}
}

func (m *Mux) postRoomIDAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var msg playable.PayloadIn
		if !decodeRequest(w, r, &msg) {
			return
		}

		if err := m.pitBoss.SubmitAction(r.Context(), gmux.Vars(r)["id"], seatID(r), &msg); err != nil {
			writeRoomError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, playable.OK(msg.Context))
	}
}
