package token

import (
	"crypto/rand"
	"math/big"
)

// RoomCodeLength is the length of a room code
const RoomCodeLength = 6

// alphabet leaves out 0, O, 1 and I so codes can be read aloud
const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Generate returns a crypto-secure random string of length n
// The random string contains upper-case letters and digits that are easy to tell apart
func Generate(n int) (string, error) {
	max := big.NewInt(int64(len(alphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}

		b[i] = alphabet[idx.Int64()]
	}

	return string(b), nil
}

// RoomCode returns a short code players can share to join a room
func RoomCode() (string, error) {
	return Generate(RoomCodeLength)
}
