package domain

// VoiceState is the occupant record of one identity inside one voice
// channel. At most one record per identity exists at a time.
type VoiceState struct {
	UserID    UserID    `json:"user_id"`
	RoomID    RoomID    `json:"room_id"`
	ChannelID ChannelID `json:"channel_id"`
	Muted     bool      `json:"muted"`
	Video     bool      `json:"video"`
	Screen    bool      `json:"screen"`
}

// Initiator picks which of two co-occupants originates the peer negotiation.
// The rule must be derivable by each side from the roster alone, so it is a
// total order over identity ids: the byte-wise lesser id initiates, the
// greater waits for the offer. If ids ever stop being strings this is the
// one place the order has to be re-pinned.
func Initiator(a, b UserID) UserID {
	if a < b {
		return a
	}
	return b
}
