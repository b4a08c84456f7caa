package battle

import (
	"context"
	"fmt"

	"github.com/ericogr/pokebattle/internal/constants"
	"github.com/ericogr/pokebattle/internal/logging"
)

const victoryMusic = "victory.mp3"

// DeclareWinner ends the battle in favour of winner. Only the first call has
// any effect. The configured GameOverHandler is invoked on its own goroutine
// with a snapshot taken after the game-over events were recorded.
func (b *Battle) DeclareWinner(winner, loser *Player) {
	if b.winnerName != "" || winner == nil {
		return
	}
	b.winnerName = winner.Name
	b.endBattle()

	loserName := ""
	if loser != nil {
		loserName = loser.Name
	}
	b.log.Append(SoundEffectEvent{FileName: victoryMusic, SoundType: SoundMusic, ForPlayerName: winner.Name})
	if loser != nil {
		b.log.Append(SoundEffectEvent{SoundType: SoundMusic, ForPlayerName: loser.Name, StopMusic: true})
	}
	b.log.Append(DisplayMessage{
		ForPlayerName: winner.Name,
		Message:       fmt.Sprintf("You %s Defeated %s", winner.Name, loserName),
	})
	if loser != nil {
		b.log.Append(DisplayMessage{
			ForPlayerName: loser.Name,
			Message:       fmt.Sprintf("You %s Lost against %s", loser.Name, winner.Name),
		})
	}
	b.log.Append(GameOver{WinnerName: winner.Name, LoserName: loserName})

	fields := b.logFields()
	fields[constants.LogFieldWinner] = winner.Name
	fields[constants.LogFieldLoser] = loserName
	logging.Info("winner declared", fields)

	if b.gameOver == nil {
		return
	}
	w := winner.clone()
	var l Player
	if loser != nil {
		l = loser.clone()
	}
	snap := b.snapshot(true)
	handler := b.gameOver
	b.handlers.Add(1)
	go func() {
		defer b.handlers.Done()
		defer func() {
			if r := recover(); r != nil {
				logging.Error("game over handler panicked", fmt.Errorf("%v", r), logging.Fields{constants.LogFieldBattleID: snap.BattleID})
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), gameOverHandlerTimeout)
		defer cancel()
		if err := handler.HandleGameOver(ctx, w, l, snap); err != nil {
			logging.Error("game over handler failed", err, logging.Fields{
				constants.LogFieldBattleID: snap.BattleID,
				constants.LogFieldWinner:   w.Name,
			})
		}
	}()
}
