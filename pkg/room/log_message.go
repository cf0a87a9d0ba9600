package room

import (
	"stackandsteal-server/pkg/playable"
)

const logMessageLimit = 25

// addLogMessages adds log messages, only the newest logMessageLimit are kept
// Note: this must only be called from within the run loop
func (d *Dealer) addLogMessages(messages []*playable.LogMessage) {
	m := append(d.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	d.logMessages = m
}

// drainGameLog moves everything the game narrated into the room log
// Note: this must only be called from within the run loop
func (d *Dealer) drainGameLog() {
	if d.game == nil {
		return
	}

	for {
		select {
		case msgs := <-d.game.LogChan():
			d.addLogMessages(msgs)
		default:
			return
		}
	}
}
