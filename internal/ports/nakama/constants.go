package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// MatchNameSpades is the authoritative match handler name registered with Nakama.
	MatchNameSpades = "spades_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartHand int64 = 1
	OpPlayCard  int64 = 2

	// Server -> Client events
	OpPlayerJoined  int64 = 101
	OpPlayerLeft    int64 = 102
	OpHandStarted   int64 = 103
	OpHandDealt     int64 = 104 // sent privately
	OpCardPlayed    int64 = 105
	OpTrumpBroken   int64 = 106
	OpTrickResolved int64 = 107
	OpBooksUpdated  int64 = 108
	OpHandEnded     int64 = 109
	OpRejected      int64 = 110 // sent privately to the offending sender
)
