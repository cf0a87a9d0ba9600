package room

import "errors"

// UserError is a lifecycle error of a room
// The value is a stable code clients can switch on
type UserError string

// lifecycle errors
const (
	ErrRoomNotFound    UserError = "ROOM_NOT_FOUND"
	ErrRoomFull        UserError = "ROOM_FULL"
	ErrNotHost         UserError = "NOT_HOST"
	ErrAlreadyStarted  UserError = "ALREADY_STARTED"
	ErrRoomNotFull     UserError = "ROOM_NOT_FULL"
	ErrNotSeated       UserError = "NOT_SEATED"
	ErrAlreadySeated   UserError = "ALREADY_SEATED"
	ErrMatchNotStarted UserError = "MATCH_NOT_STARTED"
	ErrRoomClosed      UserError = "ROOM_CLOSED"
)

var userErrorMessages = map[UserError]string{
	ErrRoomNotFound:    "room not found",
	ErrRoomFull:        "the room is full",
	ErrNotHost:         "only the host can do that",
	ErrAlreadyStarted:  "the match has already started",
	ErrRoomNotFull:     "the room is not full yet",
	ErrNotSeated:       "you are not seated in this room",
	ErrAlreadySeated:   "you are already seated in this room",
	ErrMatchNotStarted: "the match has not started",
	ErrRoomClosed:      "the room is closed",
}

func (u UserError) Error() string {
	if msg, ok := userErrorMessages[u]; ok {
		return msg
	}

	return string(u)
}

// Code returns the stable code of the error
func (u UserError) Code() string {
	return string(u)
}

// IsUserError returns the UserError wrapped in err, if any
func IsUserError(err error) (UserError, bool) {
	var u UserError
	if errors.As(err, &u) {
		return u, true
	}

	return "", false
}
