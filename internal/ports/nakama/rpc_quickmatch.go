package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/heroiclabs/nakama-common/runtime"
)

// QuickMatchResponse carries the match id the client should join.
type QuickMatchResponse struct {
	MatchID string `json:"match_id"`
	Created bool   `json:"created"`
}

// rpcQuickMatch finds an open lobby to join, creating a fresh match when
// none is listed.
func rpcQuickMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	query := "+label.open:T +label.game:spades +label.phase:lobby"
	limit := 1
	minSize := 0
	maxSize := 3 // a listed match must still have a seat left

	matches, err := nk.MatchList(ctx, limit, true, "", &minSize, &maxSize, query)
	if err != nil {
		logger.Error("rpcQuickMatch: match list failed: %v", err)
		return "", runtime.NewError("failed to list matches", 13)
	}

	response := QuickMatchResponse{}
	if len(matches) > 0 {
		response.MatchID = matches[0].GetMatchId()
	} else {
		matchID, err := nk.MatchCreate(ctx, MatchNameSpades, nil)
		if err != nil {
			logger.Error("rpcQuickMatch: match create failed: %v", err)
			return "", runtime.NewError("failed to create match", 13)
		}
		response.MatchID = matchID
		response.Created = true
	}

	out, err := json.Marshal(response)
	if err != nil {
		return "", runtime.NewError("failed to marshal response", 13)
	}
	return string(out), nil
}
