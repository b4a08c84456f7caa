package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ericogr/pokebattle/internal/battle"
	"github.com/ericogr/pokebattle/internal/constants"
	"github.com/ericogr/pokebattle/internal/logging"
)

const recordsTimeout = 10 * time.Second

// ResultRecorder is the storage side of a finished battle.
type ResultRecorder interface {
	RecordResult(battleID, winner, loser string) (bool, error)
}

// Recorder stores battle results and notifies the remote records endpoint
// for challenge battles.
type Recorder struct {
	repo       ResultRecorder
	recordsURL string
	client     *http.Client
}

// NewRecorder returns a Recorder. An empty recordsURL disables the remote
// notification.
func NewRecorder(repo ResultRecorder, recordsURL string, client *http.Client) *Recorder {
	if client == nil {
		client = &http.Client{Timeout: recordsTimeout}
	}
	return &Recorder{repo: repo, recordsURL: recordsURL, client: client}
}

// HandleGameOver records the result once per battle. Computer players get
// no profile.
func (r *Recorder) HandleGameOver(ctx context.Context, winner, loser battle.Player, snap battle.BattleData) error {
	recorded, err := r.repo.RecordResult(snap.BattleID, profileName(winner), profileName(loser))
	if err != nil {
		return fmt.Errorf("record result of %s: %w", snap.BattleID, err)
	}
	fields := logging.Fields{
		constants.LogFieldBattleID: snap.BattleID,
		constants.LogFieldWinner:   winner.Name,
		constants.LogFieldLoser:    loser.Name,
	}
	if !recorded {
		logging.Debug("battle result already recorded", fields)
		return nil
	}
	logging.Info("battle result recorded", fields)

	if snap.BattleSubType != battle.SubTypeChallenge || r.recordsURL == "" {
		return nil
	}
	return r.notify(ctx, winner.Name, loser.Name)
}

func profileName(p battle.Player) string {
	if p.Type == battle.Computer {
		return ""
	}
	return p.Name
}

func (r *Recorder) notify(ctx context.Context, winner, loser string) error {
	u, err := url.Parse(r.recordsURL)
	if err != nil {
		return fmt.Errorf("invalid records url: %w", err)
	}
	q := u.Query()
	q.Set("winner", winner)
	q.Set("loser", loser)
	u.RawQuery = q.Encode()

	ctx, cancel := context.WithTimeout(ctx, recordsTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), nil)
	if err != nil {
		return err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("notify records: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notify records: unexpected status %d", resp.StatusCode)
	}
	logging.Info("records updated", logging.Fields{
		constants.LogFieldURL:    u.Redacted(),
		constants.LogFieldStatus: resp.StatusCode,
	})
	return nil
}
