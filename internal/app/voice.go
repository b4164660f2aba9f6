package app

import (
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/reks-G/Mrdomsetos/internal/domain"
)

// Voice tracks which identity occupies which voice channel. One occupant
// record per identity at most; joining a second channel implies leaving the
// first. Channel lifecycle for ephemeral channels is driven by the
// orchestrator off the occupant counts reported here.
type Voice struct {
	mu        sync.RWMutex
	occupants map[domain.UserID]*domain.VoiceState
}

func NewVoice() *Voice {
	return &Voice{occupants: make(map[domain.UserID]*domain.VoiceState)}
}

// Join creates the occupant record. If the identity already occupies a
// different channel the previous record is returned so the caller can
// broadcast the vacated roster; joining the same channel again is a no-op
// and reports joined=false.
func (v *Voice) Join(uid domain.UserID, roomID domain.RoomID, chID domain.ChannelID) (prev *domain.VoiceState, joined bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if cur, ok := v.occupants[uid]; ok {
		if cur.RoomID == roomID && cur.ChannelID == chID {
			return nil, false
		}
		prev = cur
	}
	v.occupants[uid] = &domain.VoiceState{UserID: uid, RoomID: roomID, ChannelID: chID}
	log.Info().Str("module", "app.voice").Str("user", string(uid)).Str("channel", string(chID)).Msg("voice join")
	return prev, true
}

func (v *Voice) Leave(uid domain.UserID) (*domain.VoiceState, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	state, ok := v.occupants[uid]
	if !ok {
		return nil, false
	}
	delete(v.occupants, uid)
	log.Info().Str("module", "app.voice").Str("user", string(uid)).Str("channel", string(state.ChannelID)).Msg("voice leave")
	return state, true
}

func (v *Voice) Get(uid domain.UserID) (*domain.VoiceState, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	state, ok := v.occupants[uid]
	return state, ok
}

func (v *Voice) SetMuted(uid domain.UserID, muted bool) (*domain.VoiceState, bool) {
	return v.update(uid, func(s *domain.VoiceState) { s.Muted = muted })
}

func (v *Voice) SetVideo(uid domain.UserID, video bool) (*domain.VoiceState, bool) {
	return v.update(uid, func(s *domain.VoiceState) { s.Video = video })
}

func (v *Voice) SetScreen(uid domain.UserID, screen bool) (*domain.VoiceState, bool) {
	return v.update(uid, func(s *domain.VoiceState) { s.Screen = screen })
}

func (v *Voice) update(uid domain.UserID, fn func(*domain.VoiceState)) (*domain.VoiceState, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	state, ok := v.occupants[uid]
	if !ok {
		return nil, false
	}
	fn(state)
	return state, true
}

// Roster snapshots the channel occupants sorted by user id. The sort keeps
// the order of the roster identical for every receiver, which the clients'
// lower-id-initiates rule depends on.
func (v *Voice) Roster(roomID domain.RoomID, chID domain.ChannelID) []domain.VoiceState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	var out []domain.VoiceState
	for _, state := range v.occupants {
		if state.RoomID == roomID && state.ChannelID == chID {
			out = append(out, *state)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

func (v *Voice) OccupantCount(roomID domain.RoomID, chID domain.ChannelID) int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	n := 0
	for _, state := range v.occupants {
		if state.RoomID == roomID && state.ChannelID == chID {
			n++
		}
	}
	return n
}
