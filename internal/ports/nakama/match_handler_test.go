package nakama

import (
	"context"
	"encoding/json"
	"math/rand"
	"testing"

	"spades/internal/app"
	"spades/internal/bot"
	"spades/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

// mockDispatcher records match dispatcher calls for assertions.
type mockDispatcher struct {
	broadcasts   []broadcastRecord
	labelUpdates int
	lastLabel    string
}

type broadcastRecord struct {
	opCode  int64
	data    []byte
	targets []runtime.Presence
}

func (md *mockDispatcher) BroadcastMessage(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	md.broadcasts = append(md.broadcasts, broadcastRecord{
		opCode:  opCode,
		data:    append([]byte(nil), data...),
		targets: presences,
	})
	return nil
}

func (md *mockDispatcher) BroadcastMessageDeferred(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	return nil
}

func (md *mockDispatcher) MatchKick(presences []runtime.Presence) error {
	return nil
}

func (md *mockDispatcher) MatchLabelUpdate(label string) error {
	md.labelUpdates++
	md.lastLabel = label
	return nil
}

func (md *mockDispatcher) opCodes() []int64 {
	codes := make([]int64, 0, len(md.broadcasts))
	for _, b := range md.broadcasts {
		codes = append(codes, b.opCode)
	}
	return codes
}

func (md *mockDispatcher) lastWithOpCode(opCode int64) (broadcastRecord, bool) {
	for i := len(md.broadcasts) - 1; i >= 0; i-- {
		if md.broadcasts[i].opCode == opCode {
			return md.broadcasts[i], true
		}
	}
	return broadcastRecord{}, false
}

// fakePresence implements runtime.Presence for a given user id.
type fakePresence struct {
	userId string
}

func (fp fakePresence) GetUserId() string                 { return fp.userId }
func (fp fakePresence) GetSessionId() string              { return "session-" + fp.userId }
func (fp fakePresence) GetNodeId() string                 { return "node-1" }
func (fp fakePresence) GetHidden() bool                   { return false }
func (fp fakePresence) GetPersistence() bool              { return true }
func (fp fakePresence) GetUsername() string               { return fp.userId }
func (fp fakePresence) GetStatus() string                 { return "" }
func (fp fakePresence) GetReason() runtime.PresenceReason { return runtime.PresenceReasonUnknown }

// mockMessage implements runtime.MatchData.
type mockMessage struct {
	fakePresence
	opCode int64
	data   []byte
}

func (mm mockMessage) GetOpCode() int64        { return mm.opCode }
func (mm mockMessage) GetData() []byte         { return mm.data }
func (mm mockMessage) GetReliable() bool       { return true }
func (mm mockMessage) GetReceiveTime() int64   { return 0 }
func (mm mockMessage) GetReceiveTimeMs() int64 { return 0 }

func newTestState() *MatchState {
	return &MatchState{
		OwnerSeat: -1,
		Presences: make(map[string]runtime.Presence),
		App:       app.NewService(rand.New(rand.NewSource(7))),
		Bots:      make(map[domain.Seat]*bot.Agent),
	}
}

func joinUser(t *testing.T, mh *matchHandler, state *MatchState, dispatcher *mockDispatcher, userId string) {
	t.Helper()
	result := mh.MatchJoin(context.Background(), noopLogger{}, nil, nil, dispatcher, 0, state, []runtime.Presence{fakePresence{userId: userId}})
	if result == nil {
		t.Fatalf("MatchJoin returned nil state for %s", userId)
	}
}

func TestFindFirstHumanSeat(t *testing.T) {
	tests := []struct {
		name  string
		seats []string
		want  int
	}{
		{
			name:  "FirstHumanAfterBot",
			seats: []string{"bot_wendy", "user-1", "", ""},
			want:  1,
		},
		{
			name:  "AllBots",
			seats: []string{"bot_wendy", "bot_nora", "", ""},
			want:  -1,
		},
		{
			name:  "AllEmpty",
			seats: []string{"", "", "", ""},
			want:  -1,
		},
		{
			name:  "FirstHumanIsSeatZero",
			seats: []string{"user-1", "bot_wendy", "user-2", ""},
			want:  0,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if got := findFirstHumanSeat(test.seats); got != test.want {
				t.Fatalf("findFirstHumanSeat() = %d, want %d", got, test.want)
			}
		})
	}
}

func TestMatchJoin_AssignsSeatsAndOwner(t *testing.T) {
	mh := newMatchHandler()
	dispatcher := &mockDispatcher{}
	state := newTestState()

	joinUser(t, mh, state, dispatcher, "user-1")
	joinUser(t, mh, state, dispatcher, "user-2")

	if state.Seats[0] != "user-1" || state.Seats[1] != "user-2" {
		t.Fatalf("Seats = %v, want user-1 and user-2 in the first two seats", state.Seats)
	}
	if state.OwnerSeat != 0 {
		t.Fatalf("OwnerSeat = %d, want 0", state.OwnerSeat)
	}
	if state.GetOpenSeatsCount() != 2 {
		t.Fatalf("open seats = %d, want 2", state.GetOpenSeatsCount())
	}

	record, ok := dispatcher.lastWithOpCode(OpPlayerJoined)
	if !ok {
		t.Fatalf("no OpPlayerJoined broadcast, got opcodes %v", dispatcher.opCodes())
	}
	var payload PlayerJoinedPayload
	if err := json.Unmarshal(record.data, &payload); err != nil {
		t.Fatalf("unmarshal joined payload: %v", err)
	}
	if payload.UserID != "user-2" || payload.Seat != 1 || payload.Owner {
		t.Fatalf("joined payload = %+v, want user-2 in seat 1, not owner", payload)
	}
	if dispatcher.labelUpdates == 0 {
		t.Fatalf("expected label update after join")
	}
}

func TestMatchLeave_ReassignsOwnerOrTerminates(t *testing.T) {
	mh := newMatchHandler()
	dispatcher := &mockDispatcher{}
	state := newTestState()
	joinUser(t, mh, state, dispatcher, "user-1")
	joinUser(t, mh, state, dispatcher, "user-2")

	result := mh.MatchLeave(context.Background(), noopLogger{}, nil, nil, dispatcher, 1, state, []runtime.Presence{fakePresence{userId: "user-1"}})
	if result == nil {
		t.Fatalf("match terminated while user-2 was still seated")
	}
	if state.Seats[0] != "" {
		t.Fatalf("seat 0 still held by %q after leave", state.Seats[0])
	}
	if state.OwnerSeat != 1 {
		t.Fatalf("OwnerSeat = %d, want 1 after owner left", state.OwnerSeat)
	}

	result = mh.MatchLeave(context.Background(), noopLogger{}, nil, nil, dispatcher, 2, state, []runtime.Presence{fakePresence{userId: "user-2"}})
	if result != nil {
		t.Fatalf("expected match termination when the last human leaves")
	}
}

func TestHandleStartHand_FillsBotsAndDeals(t *testing.T) {
	mh := newMatchHandler()
	dispatcher := &mockDispatcher{}
	state := newTestState()
	joinUser(t, mh, state, dispatcher, "user-1")
	dispatcher.broadcasts = nil

	msg := mockMessage{fakePresence: fakePresence{userId: "user-1"}, opCode: OpStartHand}
	mh.handleStartHand(state, dispatcher, noopLogger{}, msg)

	if state.Game == nil || state.Game.Phase != domain.PhasePlaying {
		t.Fatalf("expected a hand in progress after start")
	}
	if got := len(state.Bots); got != 3 {
		t.Fatalf("bot agents = %d, want 3", got)
	}
	for i := 1; i < domain.NumSeats; i++ {
		if !isBotUserId(state.Seats[i]) {
			t.Fatalf("seat %d = %q, want a bot id", i, state.Seats[i])
		}
	}

	// Only the human's hand is dealt over the wire; bot recipients are dropped.
	dealt := 0
	for _, b := range dispatcher.broadcasts {
		if b.opCode != OpHandDealt {
			continue
		}
		dealt++
		if len(b.targets) != 1 || b.targets[0].GetUserId() != "user-1" {
			t.Fatalf("hand dealt targets = %v, want only user-1", b.targets)
		}
		var payload HandDealtPayload
		if err := json.Unmarshal(b.data, &payload); err != nil {
			t.Fatalf("unmarshal dealt payload: %v", err)
		}
		if payload.Seat != 0 || len(payload.Cards) != domain.HandSize {
			t.Fatalf("dealt payload seat %d with %d cards, want seat 0 with %d", payload.Seat, len(payload.Cards), domain.HandSize)
		}
	}
	if dealt != 1 {
		t.Fatalf("hand dealt broadcasts = %d, want 1", dealt)
	}

	if _, ok := dispatcher.lastWithOpCode(OpHandStarted); !ok {
		t.Fatalf("no OpHandStarted broadcast, got opcodes %v", dispatcher.opCodes())
	}
}

func TestHandleStartHand_RejectsNonOwner(t *testing.T) {
	mh := newMatchHandler()
	dispatcher := &mockDispatcher{}
	state := newTestState()
	joinUser(t, mh, state, dispatcher, "user-1")
	joinUser(t, mh, state, dispatcher, "user-2")
	dispatcher.broadcasts = nil

	msg := mockMessage{fakePresence: fakePresence{userId: "user-2"}, opCode: OpStartHand}
	mh.handleStartHand(state, dispatcher, noopLogger{}, msg)

	if state.Game != nil {
		t.Fatalf("non-owner started a hand")
	}
	record, ok := dispatcher.lastWithOpCode(OpRejected)
	if !ok {
		t.Fatalf("no OpRejected broadcast, got opcodes %v", dispatcher.opCodes())
	}
	if len(record.targets) != 1 || record.targets[0].GetUserId() != "user-2" {
		t.Fatalf("rejection targets = %v, want only user-2", record.targets)
	}
}

func TestHandlePlayCard_RejectsIllegalPlayPrivately(t *testing.T) {
	mh := newMatchHandler()
	dispatcher := &mockDispatcher{}
	state := newTestState()
	joinUser(t, mh, state, dispatcher, "user-1")

	msg := mockMessage{fakePresence: fakePresence{userId: "user-1"}, opCode: OpStartHand}
	mh.handleStartHand(state, dispatcher, noopLogger{}, msg)
	dispatcher.broadcasts = nil

	// A card the leader cannot possibly be allowed to lead before trump is
	// broken, unless the whole hand is spades.
	lead := state.Game.Hands[domain.SeatSouth].Cards()
	var spade *domain.Card
	allSpades := true
	for i := range lead {
		if lead[i].Suit == domain.Spades {
			spade = &lead[i]
		} else {
			allSpades = false
		}
	}
	if spade == nil || allSpades {
		t.Skip("dealt hand cannot exercise the spade lead gate")
	}

	body, _ := json.Marshal(PlayCardRequest{Card: cardToDTO(*spade)})
	playMsg := mockMessage{fakePresence: fakePresence{userId: "user-1"}, opCode: OpPlayCard, data: body}
	mh.handlePlayCard(state, dispatcher, noopLogger{}, playMsg)

	record, ok := dispatcher.lastWithOpCode(OpRejected)
	if !ok {
		t.Fatalf("no OpRejected broadcast, got opcodes %v", dispatcher.opCodes())
	}
	if len(record.targets) != 1 || record.targets[0].GetUserId() != "user-1" {
		t.Fatalf("rejection targets = %v, want only user-1", record.targets)
	}
	if state.Game.Hands[domain.SeatSouth].Len() != domain.HandSize {
		t.Fatalf("rejected play mutated the hand")
	}
	if _, ok := dispatcher.lastWithOpCode(OpCardPlayed); ok {
		t.Fatalf("rejected play was broadcast as OpCardPlayed")
	}
}

func TestHandlePlayCard_AcceptedPlayBroadcasts(t *testing.T) {
	mh := newMatchHandler()
	dispatcher := &mockDispatcher{}
	state := newTestState()
	joinUser(t, mh, state, dispatcher, "user-1")

	msg := mockMessage{fakePresence: fakePresence{userId: "user-1"}, opCode: OpStartHand}
	mh.handleStartHand(state, dispatcher, noopLogger{}, msg)
	dispatcher.broadcasts = nil

	legal := state.Game.LegalPlays(domain.SeatSouth)
	if len(legal) == 0 {
		t.Fatalf("leader has no legal plays")
	}
	body, _ := json.Marshal(PlayCardRequest{Card: cardToDTO(legal[0])})
	playMsg := mockMessage{fakePresence: fakePresence{userId: "user-1"}, opCode: OpPlayCard, data: body}
	mh.handlePlayCard(state, dispatcher, noopLogger{}, playMsg)

	record, ok := dispatcher.lastWithOpCode(OpCardPlayed)
	if !ok {
		t.Fatalf("no OpCardPlayed broadcast, got opcodes %v", dispatcher.opCodes())
	}
	var payload CardPlayedPayload
	if err := json.Unmarshal(record.data, &payload); err != nil {
		t.Fatalf("unmarshal played payload: %v", err)
	}
	if payload.Seat != 0 || payload.NextSeat != 1 {
		t.Fatalf("played payload = %+v, want seat 0 then seat 1", payload)
	}
	if record.targets != nil {
		t.Fatalf("OpCardPlayed should broadcast to everyone, got targets %v", record.targets)
	}
}

func TestProcessBots_PlaysAfterDelay(t *testing.T) {
	mh := newMatchHandler()
	dispatcher := &mockDispatcher{}
	state := newTestState()
	state.BotMinDelay = 1
	state.BotMaxDelay = 1
	joinUser(t, mh, state, dispatcher, "user-1")

	msg := mockMessage{fakePresence: fakePresence{userId: "user-1"}, opCode: OpStartHand}
	mh.handleStartHand(state, dispatcher, noopLogger{}, msg)

	legal := state.Game.LegalPlays(domain.SeatSouth)
	body, _ := json.Marshal(PlayCardRequest{Card: cardToDTO(legal[0])})
	playMsg := mockMessage{fakePresence: fakePresence{userId: "user-1"}, opCode: OpPlayCard, data: body}
	mh.handlePlayCard(state, dispatcher, noopLogger{}, playMsg)
	dispatcher.broadcasts = nil

	// First tick arms the delay, the next tick past it plays the card.
	state.Tick = 10
	mh.processBots(state, dispatcher, noopLogger{})
	if _, ok := dispatcher.lastWithOpCode(OpCardPlayed); ok {
		t.Fatalf("bot played on the arming tick")
	}
	if state.BotWaitUntil == 0 {
		t.Fatalf("bot delay was not armed")
	}

	state.Tick = state.BotWaitUntil
	mh.processBots(state, dispatcher, noopLogger{})
	if _, ok := dispatcher.lastWithOpCode(OpCardPlayed); !ok {
		t.Fatalf("bot did not play after its delay, got opcodes %v", dispatcher.opCodes())
	}
	if state.Game.Trick.Size() != 2 {
		t.Fatalf("trick size = %d, want 2 after the bot play", state.Game.Trick.Size())
	}
}

func TestMatchJoinAttempt_BlocksDuringHand(t *testing.T) {
	mh := newMatchHandler()
	dispatcher := &mockDispatcher{}
	state := newTestState()
	joinUser(t, mh, state, dispatcher, "user-1")

	msg := mockMessage{fakePresence: fakePresence{userId: "user-1"}, opCode: OpStartHand}
	mh.handleStartHand(state, dispatcher, noopLogger{}, msg)

	_, allowed, reason := mh.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, dispatcher, 5, state, fakePresence{userId: "user-2"}, nil)
	if allowed {
		t.Fatalf("new join allowed mid-hand")
	}
	if reason != "match_in_progress" {
		t.Fatalf("reason = %q, want match_in_progress", reason)
	}

	// The seated player may always rejoin.
	_, allowed, _ = mh.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, dispatcher, 5, state, fakePresence{userId: "user-1"}, nil)
	if !allowed {
		t.Fatalf("rejoin refused for a seated player")
	}

	// Once the hand has ended the lobby reopens for fresh joins.
	state.Game.Phase = domain.PhaseEnded
	_, allowed, reason = mh.MatchJoinAttempt(context.Background(), noopLogger{}, nil, nil, dispatcher, 6, state, fakePresence{userId: "user-2"}, nil)
	if !allowed {
		t.Fatalf("join refused after the hand ended: %q", reason)
	}
}

func TestCardDTO_RoundTrip(t *testing.T) {
	cards := []domain.Card{
		{Rank: domain.Ace, Suit: domain.Hearts},
		{Rank: domain.Ten, Suit: domain.Diamonds},
		{Rank: domain.BigJoker, Suit: domain.Spades},
		{Rank: domain.Two, Suit: domain.Spades},
	}
	for _, card := range cards {
		dto := cardToDTO(card)
		back, err := cardFromDTO(dto)
		if err != nil {
			t.Fatalf("cardFromDTO(%+v): %v", dto, err)
		}
		if back != card {
			t.Fatalf("round trip changed %v into %v", card, back)
		}
	}

	if _, err := cardFromDTO(CardDTO{Rank: "A", Suit: "X"}); err == nil {
		t.Fatalf("expected error for unknown suit")
	}
	if _, err := cardFromDTO(CardDTO{Rank: "Joker", Suit: "S"}); err == nil {
		t.Fatalf("expected error for unknown rank")
	}
}
