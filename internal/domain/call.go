package domain

// CallPhase is the per-identity state of the one-to-one call machine.
// Idle is represented by the absence of a call record; the phases below
// only exist while a call is live.
type CallPhase int

const (
	CallDialing CallPhase = iota
	CallRinging
	CallConnected
)

func (p CallPhase) String() string {
	switch p {
	case CallDialing:
		return "dialing"
	case CallRinging:
		return "ringing"
	case CallConnected:
		return "connected"
	}
	return "unknown"
}
