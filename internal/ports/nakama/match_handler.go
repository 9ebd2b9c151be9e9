package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"

	"spades/internal/app"
	"spades/internal/bot"
	"spades/internal/config"
	"spades/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for the match handler.
type MatchState struct {
	Seats     [domain.NumSeats]string     `json:"seats"`      // user IDs; "" means open, bot ids for automated seats
	OwnerSeat int                         `json:"owner_seat"` // seat index of the match owner, -1 when unset
	Tick      int64                       `json:"tick"`
	Presences map[string]runtime.Presence `json:"-"` // userId -> presence for targeted messaging

	App  *app.Service `json:"-"`
	Game *domain.Game `json:"-"`

	Bots map[domain.Seat]*bot.Agent `json:"-"`

	BotMinDelay  int   `json:"bot_min_delay"`  // min seconds a bot waits before acting
	BotMaxDelay  int   `json:"bot_max_delay"`  // max seconds a bot waits before acting
	BotWaitUntil int64 `json:"bot_wait_until"` // tick when the pending bot play becomes visible
}

// GetOpenSeatsCount returns the number of unoccupied seats.
func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

const botUserPrefix = "bot_"

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return strings.HasPrefix(userId, botUserPrefix)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userId := range seats {
		if userId != "" && !isBotUserId(userId) {
			return i
		}
	}
	return -1
}

// lowestOpenSeat returns the first free seat index, or -1 when full.
func lowestOpenSeat(seats *[domain.NumSeats]string) int {
	for i, userId := range seats {
		if userId == "" {
			return i
		}
	}
	return -1
}

func newMatchHandler() *matchHandler { return &matchHandler{} }

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config: %v", err)
	}

	minDelay, maxDelay := config.BotDelayBounds()
	state := &MatchState{
		OwnerSeat:   -1,
		Presences:   make(map[string]runtime.Presence),
		App:         app.NewService(nil),
		Bots:        make(map[domain.Seat]*bot.Agent),
		BotMinDelay: minDelay,
		BotMaxDelay: maxDelay,
	}

	// Environment overrides for bot pacing.
	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		if val, ok := env["spades_bot_min_delay_sec"]; ok {
			if i, err := strconv.Atoi(val); err == nil && i > 0 {
				state.BotMinDelay = i
			}
		}
		if val, ok := env["spades_bot_max_delay_sec"]; ok {
			if i, err := strconv.Atoi(val); err == nil && i >= state.BotMinDelay {
				state.BotMaxDelay = i
			}
		}
	}

	labelBytes, err := json.Marshal(Label{Open: true, Game: "spades", Phase: string(domain.PhaseLobby)})
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1 // one tick per second drives bot pacing
	return state, tickRate, string(labelBytes)
}

// MatchJoinAttempt validates whether a presence may join the match.
func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Rejoins are always allowed; a hand in progress blocks new joins.
	for _, userId := range matchState.Seats {
		if userId == presence.GetUserId() {
			return state, true, ""
		}
	}
	if matchState.Game != nil && matchState.Game.Phase == domain.PhasePlaying {
		return state, false, "match_in_progress"
	}
	if matchState.GetOpenSeatsCount() == 0 {
		return state, false, "match_full"
	}
	return state, true, ""
}

// MatchJoin assigns seats and owner to joining presences.
func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		// Rejoin: the seat is still held.
		alreadySeated := false
		for _, userId := range matchState.Seats {
			if userId == p.GetUserId() {
				alreadySeated = true
				break
			}
		}
		if alreadySeated {
			continue
		}

		seat := lowestOpenSeat(&matchState.Seats)
		if seat < 0 {
			logger.Warn("MatchJoin: User %s joined but no seat was available.", p.GetUserId())
			continue
		}
		matchState.Seats[seat] = p.GetUserId()

		if matchState.OwnerSeat < 0 {
			matchState.OwnerSeat = seat
		}

		mh.broadcast(dispatcher, logger, OpPlayerJoined, PlayerJoinedPayload{
			UserID: p.GetUserId(),
			Seat:   seat,
			Owner:  seat == matchState.OwnerSeat,
		}, nil)
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave frees seats and reassigns the owner when presences leave.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		for i, userId := range matchState.Seats {
			if userId == p.GetUserId() {
				matchState.Seats[i] = ""
				mh.broadcast(dispatcher, logger, OpPlayerLeft, PlayerLeftPayload{UserID: userId, Seat: i}, nil)
				break
			}
		}
	}

	matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
	if matchState.OwnerSeat < 0 {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

// MatchLoop handles client messages and drives bot turns.
func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartHand:
			mh.handleStartHand(matchState, dispatcher, logger, msg)
		case OpPlayCard:
			mh.handlePlayCard(matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	mh.processBots(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}

// handleStartHand deals a new hand on the owner's request, filling empty
// seats with configured bot agents first.
func (mh *matchHandler) handleStartHand(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderSeat := mh.seatOf(state, msg.GetUserId())
	if senderSeat != state.OwnerSeat {
		mh.reject(state, dispatcher, logger, msg.GetUserId(), "not_owner")
		return
	}
	if state.Game != nil && state.Game.Phase == domain.PhasePlaying {
		mh.reject(state, dispatcher, logger, msg.GetUserId(), "hand_in_progress")
		return
	}

	for i, userId := range state.Seats {
		if userId != "" {
			continue
		}
		seat := domain.Seat(i)
		name := config.SeatName(i)
		if name == "" {
			name = seat.String()
		}
		level, err := bot.ParseLevel(config.StrategyForSeat(i))
		if err != nil {
			logger.Warn("handleStartHand: %v, falling back to partner strategy", err)
			level = bot.BotLevelPartner
		}
		agent, err := bot.NewAgent(seat, name, level)
		if err != nil {
			logger.Error("handleStartHand: failed to create bot agent: %v", err)
			return
		}
		state.Seats[i] = botUserPrefix + strings.ToLower(name)
		state.Bots[seat] = agent
	}

	game, events, err := state.App.StartHand()
	if err != nil {
		logger.Error("handleStartHand: %v", err)
		return
	}
	state.Game = game
	state.BotWaitUntil = 0

	mh.dispatchEvents(state, dispatcher, logger, events)
	mh.updateLabel(state, dispatcher, logger)
}

// handlePlayCard submits a human play for the sender's seat.
func (mh *matchHandler) handlePlayCard(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	if state.Game == nil {
		mh.reject(state, dispatcher, logger, msg.GetUserId(), "no_hand_in_progress")
		return
	}

	senderSeat := mh.seatOf(state, msg.GetUserId())
	if senderSeat < 0 {
		mh.reject(state, dispatcher, logger, msg.GetUserId(), "not_seated")
		return
	}

	var request PlayCardRequest
	if err := json.Unmarshal(msg.GetData(), &request); err != nil {
		mh.reject(state, dispatcher, logger, msg.GetUserId(), "malformed_payload")
		return
	}
	card, err := cardFromDTO(request.Card)
	if err != nil {
		mh.reject(state, dispatcher, logger, msg.GetUserId(), err.Error())
		return
	}

	events, err := state.App.SubmitPlay(state.Game, domain.Seat(senderSeat), card)
	if err != nil {
		// Rule violations are rejected synchronously; nothing advanced.
		mh.reject(state, dispatcher, logger, msg.GetUserId(), err.Error())
		return
	}
	mh.dispatchEvents(state, dispatcher, logger, events)
}

// processBots plays the current seat's card when it belongs to a bot. The
// delay between tick and play is presentation pacing only; the engine
// transition itself is synchronous.
func (mh *matchHandler) processBots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Game == nil || state.Game.Phase != domain.PhasePlaying {
		return
	}

	agent, ok := state.Bots[state.Game.CurrentSeat]
	if !ok {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		delay := state.BotMinDelay
		if state.BotMaxDelay > state.BotMinDelay {
			delay += int(state.Tick) % (state.BotMaxDelay - state.BotMinDelay + 1)
		}
		state.BotWaitUntil = state.Tick + int64(delay)
		return
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	events, err := state.App.StepAutomated(state.Game, agent.Brain)
	if err != nil {
		logger.Error("processBots: bot %s failed to play: %v", agent.Name, err)
		return
	}
	mh.dispatchEvents(state, dispatcher, logger, events)
}

// seatOf returns the seat index held by the user, or -1.
func (mh *matchHandler) seatOf(state *MatchState, userId string) int {
	for i, id := range state.Seats {
		if id == userId && userId != "" {
			return i
		}
	}
	return -1
}

// dispatchEvents translates engine events to opcodes and broadcasts them.
// Targeted events reach only the named seats; events aimed solely at bot
// seats are dropped.
func (mh *matchHandler) dispatchEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		opCode, payload := translateEvent(ev)
		if opCode == 0 {
			logger.Warn("dispatchEvents: unmapped event kind %s", ev.Kind)
			continue
		}

		var targets []runtime.Presence
		if len(ev.Recipients) > 0 {
			for _, seat := range ev.Recipients {
				if p, ok := state.Presences[state.Seats[seat]]; ok {
					targets = append(targets, p)
				}
			}
			if len(targets) == 0 {
				continue
			}
		}
		mh.broadcast(dispatcher, logger, opCode, payload, targets)
	}
}

// translateEvent maps an engine event to its opcode and wire payload.
func translateEvent(ev app.Event) (int64, any) {
	switch p := ev.Payload.(type) {
	case app.HandStartedPayload:
		return OpHandStarted, HandStartedPayload{Leader: int(p.Leader)}
	case app.HandDealtPayload:
		return OpHandDealt, HandDealtPayload{Seat: int(p.Seat), Cards: cardsToDTO(p.Hand)}
	case app.CardPlayedPayload:
		return OpCardPlayed, CardPlayedPayload{Seat: int(p.Seat), Card: cardToDTO(p.Card), NextSeat: int(p.NextSeat)}
	case app.TrumpBrokenPayload:
		return OpTrumpBroken, TrumpBrokenPayload{Seat: int(p.Seat), Card: cardToDTO(p.Card)}
	case app.TrickResolvedPayload:
		plays := make([]PlayDTO, 0, len(p.Plays))
		for _, play := range p.Plays {
			plays = append(plays, PlayDTO{Seat: int(play.Seat), Card: cardToDTO(play.Card)})
		}
		return OpTrickResolved, TrickResolvedPayload{
			WinningSeat: int(p.WinningSeat),
			WinningCard: cardToDTO(p.WinningCard),
			Plays:       plays,
		}
	case app.BooksUpdatedPayload:
		return OpBooksUpdated, BooksUpdatedPayload{
			NorthSouth: p.Books[domain.TeamNorthSouth],
			EastWest:   p.Books[domain.TeamEastWest],
		}
	case app.HandEndedPayload:
		return OpHandEnded, HandEndedPayload{
			NorthSouth: p.Books[domain.TeamNorthSouth],
			EastWest:   p.Books[domain.TeamEastWest],
		}
	default:
		return 0, nil
	}
}

// reject answers the offending sender privately without touching state.
func (mh *matchHandler) reject(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userId, reason string) {
	p, ok := state.Presences[userId]
	if !ok {
		return
	}
	mh.broadcast(dispatcher, logger, OpRejected, RejectedPayload{Reason: reason}, []runtime.Presence{p})
}

func (mh *matchHandler) broadcast(dispatcher runtime.MatchDispatcher, logger runtime.Logger, opCode int64, payload any, targets []runtime.Presence) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("broadcast: marshal opcode %d: %v", opCode, err)
		return
	}
	if err := dispatcher.BroadcastMessage(opCode, data, targets, nil, true); err != nil {
		logger.Error("broadcast: opcode %d: %v", opCode, err)
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	phase := domain.PhaseLobby
	if state.Game != nil {
		phase = state.Game.Phase
	}
	open := phase == domain.PhaseLobby && state.GetOpenSeatsCount() > 0
	labelBytes, err := json.Marshal(Label{Open: open, Game: "spades", Phase: string(phase)})
	if err != nil {
		logger.Error("updateLabel: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("updateLabel: %v", err)
	}
}
