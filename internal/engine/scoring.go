package engine

import (
	"sort"

	"github.com/junseokho/HackClad-sub000/internal/game"
)

// enterScoring freezes the room and computes the final ranking:
// shard-derived VP plus the intrinsic VP of every owned card, minus
// accumulated injury. Ties keep their existing (stable) order.
func (rc *roomContext) enterScoring() {
	r := rc.r
	r.Phase = game.PhaseScoring
	r.Finished = true
	r.Reaction = nil
	r.Choice = nil
	r.DeferredChoices = nil

	rows := make([]game.ScoreRow, 0, len(r.Players))
	for i := range r.Players {
		p := &r.Players[i]
		cardVP := 0
		for _, pile := range [][]string{p.Deck, p.Hand, p.Discard} {
			for _, code := range pile {
				cardVP += rc.cat.Card(code).VictoryPoints
			}
		}
		rows = append(rows, game.ScoreRow{
			UserID:   p.UserID,
			Nickname: p.Nickname,
			ShardVP:  p.Shards,
			CardVP:   cardVP,
			Injury:   p.Injury,
			Score:    p.Shards + cardVP - p.Injury,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score > rows[j].Score
	})
	r.Ranking = rows
	rc.add("The match ends")
}
