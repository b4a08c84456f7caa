package api

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ericogr/pokebattle/internal/battle"
	"github.com/ericogr/pokebattle/internal/config"
	"github.com/ericogr/pokebattle/internal/constants"
	"github.com/ericogr/pokebattle/internal/dex"
	"github.com/ericogr/pokebattle/internal/logging"
	"github.com/ericogr/pokebattle/internal/service"
	"github.com/ericogr/pokebattle/internal/storage"
)

func newTestRouter(t *testing.T) (*gin.Engine, storage.Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := storage.OpenDB(config.DriverSQLite, filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	repo := storage.NewRepository(db)
	d := dex.Default()
	hub := service.NewHub(repo, d, service.HubOptions{TeamSize: 3, Rand: rand.New(rand.NewSource(7))})
	t.Cleanup(hub.Shutdown)

	router := gin.New()
	RegisterRoutes(router, NewBattleHandler(hub, repo, d, 5*time.Millisecond))
	return router, repo
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createBattle(t *testing.T, router http.Handler) string {
	t.Helper()
	w := do(t, router, http.MethodPost, "/api/battles", service.CreateBattleRequest{
		BattleType: battle.MultiPlayer,
		Players:    []string{" ash ", "gary"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var data battle.BattleData
	if err := json.Unmarshal(w.Body.Bytes(), &data); err != nil {
		t.Fatalf("decode battle: %v", err)
	}
	if data.BattleID == "" || data.Players[0].Name != "ash" {
		t.Fatalf("unexpected battle %+v", data)
	}
	return data.BattleID
}

func selectTeam(player string, names ...string) battle.PlayerActionEvent {
	return battle.PlayerActionEvent{PlayerName: player, Details: battle.SelectTeam{PokemonNames: names}}
}

func TestHealthAndVersion(t *testing.T) {
	router, _ := newTestRouter(t)
	if w := do(t, router, http.MethodGet, "/healthz", nil); w.Code != http.StatusOK {
		t.Fatalf("healthz: expected 200, got %d", w.Code)
	}
	w := do(t, router, http.MethodGet, "/api/version", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"version"`) {
		t.Fatalf("version: got %d %s", w.Code, w.Body.String())
	}
}

func TestBattleFlowOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t)
	id := createBattle(t, router)
	actions := "/api/battles/" + id + "/actions"

	w := do(t, router, http.MethodPost, actions, selectTeam("ash", "Pikachu", "Golem", "Snorlax"))
	if w.Code != http.StatusOK {
		t.Fatalf("ash team: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var res struct {
		Pending bool               `json:"pending"`
		State   battle.BattleState `json:"battleState"`
		Next    int                `json:"next"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil || !res.Pending {
		t.Fatalf("expected a pending action, got %s (%v)", w.Body.String(), err)
	}

	w = do(t, router, http.MethodPost, actions, selectTeam("gary", "Charizard", "Blastoise", "Venusaur"))
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if w.Code != http.StatusOK || res.Pending || res.State != battle.StateSelectingFirstPokemon {
		t.Fatalf("expected team resolution, got %d %s", w.Code, w.Body.String())
	}

	w = do(t, router, http.MethodGet, "/api/battles/"+id+"?since=0", nil)
	var page struct {
		Events []json.RawMessage `json:"events"`
		Next   int               `json:"next"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode events: %v", err)
	}
	if w.Code != http.StatusOK || page.Next != res.Next || len(page.Events) != page.Next {
		t.Fatalf("expected %d events, got %d (next %d)", res.Next, len(page.Events), page.Next)
	}

	w = do(t, router, http.MethodGet, "/api/battles/"+id, nil)
	var snap battle.BattleData
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.BattleState != battle.StateSelectingFirstPokemon || len(snap.Players[1].Team) != 3 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestSubmitActionErrors(t *testing.T) {
	router, _ := newTestRouter(t)
	id := createBattle(t, router)

	cases := []struct {
		name string
		path string
		body any
		code int
	}{
		{"unknown battle", "/api/battles/nope/actions", selectTeam("ash", "Pikachu"), http.StatusNotFound},
		{"malformed body", "/api/battles/" + id + "/actions", `{"playerName":`, http.StatusBadRequest},
		{"unknown action type", "/api/battles/" + id + "/actions", `{"playerName":"ash","details":{"type":"DANCE"}}`, http.StatusBadRequest},
		{"wrong state", "/api/battles/" + id + "/actions", battle.PlayerActionEvent{PlayerName: "ash", Details: battle.SelectMove{MoveName: "Tackle"}}, http.StatusBadRequest},
		{"unknown player", "/api/battles/" + id + "/actions", selectTeam("misty", "Pikachu"), http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, router, http.MethodPost, tc.path, tc.body)
			if w.Code != tc.code {
				t.Fatalf("expected %d, got %d: %s", tc.code, w.Code, w.Body.String())
			}
		})
	}
}

func TestSubmitActionUnknownSpecies(t *testing.T) {
	router, _ := newTestRouter(t)
	id := createBattle(t, router)
	actions := "/api/battles/" + id + "/actions"

	if w := do(t, router, http.MethodPost, actions, selectTeam("gary", "Charizard")); w.Code != http.StatusOK {
		t.Fatalf("gary team: expected 200, got %d", w.Code)
	}
	w := do(t, router, http.MethodPost, actions, selectTeam("ash", "Agumon"))
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "unknown species") {
		t.Fatalf("expected 400 naming the species, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetBattleBadInput(t *testing.T) {
	router, _ := newTestRouter(t)
	id := createBattle(t, router)
	if w := do(t, router, http.MethodGet, "/api/battles/"+id+"?since=-1", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("negative since: expected 400, got %d", w.Code)
	}
	if w := do(t, router, http.MethodGet, "/api/battles/"+strings.Repeat("x", 65), nil); w.Code != http.StatusBadRequest {
		t.Fatalf("long id: expected 400, got %d", w.Code)
	}
	if w := do(t, router, http.MethodGet, "/api/battles/missing", nil); w.Code != http.StatusNotFound {
		t.Fatalf("missing: expected 404, got %d", w.Code)
	}
}

func TestCreateBattleRejectsPlayers(t *testing.T) {
	router, _ := newTestRouter(t)
	w := do(t, router, http.MethodPost, "/api/battles", service.CreateBattleRequest{
		BattleType: battle.MultiPlayer,
		Players:    []string{"ash"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestStatsEndpoints(t *testing.T) {
	router, repo := newTestRouter(t)
	if _, err := repo.RecordResult("b-1", "ash", "gary"); err != nil {
		t.Fatalf("record: %v", err)
	}

	w := do(t, router, http.MethodGet, "/api/leaderboard?limit=1", nil)
	var users []storage.User
	if err := json.Unmarshal(w.Body.Bytes(), &users); err != nil {
		t.Fatalf("decode leaderboard: %v", err)
	}
	if w.Code != http.StatusOK || len(users) != 1 || users[0].Username != "ash" || users[0].Points != storage.PointsPerWin {
		t.Fatalf("unexpected leaderboard %d %s", w.Code, w.Body.String())
	}

	w = do(t, router, http.MethodGet, "/api/players/gary/stats", nil)
	var u storage.User
	if err := json.Unmarshal(w.Body.Bytes(), &u); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if u.Losses != 1 || u.GamesPlayed != 1 {
		t.Fatalf("unexpected stats %+v", u)
	}

	w = do(t, router, http.MethodGet, "/api/dex/species", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Pikachu") {
		t.Fatalf("species: got %d", w.Code)
	}
}

func TestStreamEvents(t *testing.T) {
	router, _ := newTestRouter(t)
	id := createBattle(t, router)
	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/battles/" + id + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	type frame struct {
		Events []json.RawMessage `json:"events"`
		Next   int               `json:"next"`
	}
	read := func() frame {
		t.Helper()
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			t.Fatalf("read frame: %v", err)
		}
		return f
	}

	first := read()
	if first.Next != len(first.Events) {
		t.Fatalf("expected the initial frame to carry every event, got %d of %d", len(first.Events), first.Next)
	}

	actions := "/api/battles/" + id + "/actions"
	do(t, router, http.MethodPost, actions, selectTeam("ash", "Pikachu", "Golem", "Snorlax"))
	do(t, router, http.MethodPost, actions, selectTeam("gary", "Charizard", "Blastoise", "Venusaur"))

	got := read()
	if len(got.Events) == 0 || got.Next <= first.Next {
		t.Fatalf("expected new events after %d, got %+v", first.Next, got)
	}
}

func TestStreamUnknownBattle(t *testing.T) {
	router, _ := newTestRouter(t)
	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/battles/missing/stream"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatalf("expected the dial to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", resp)
	}
}

func TestStreamRejectsPlainRequests(t *testing.T) {
	router, _ := newTestRouter(t)
	id := createBattle(t, router)
	core, logs := observer.New(zapcore.WarnLevel)
	logging.SetLogger(zap.New(core))
	t.Cleanup(func() { logging.SetLogger(nil) })

	w := do(t, router, http.MethodGet, "/api/battles/"+id+"/stream", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a non websocket request, got %d", w.Code)
	}
	entries := logs.FilterMessage("websocket upgrade failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected one upgrade warning, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields[constants.LogFieldBattleID] != id || fields[constants.LogFieldError] == nil {
		t.Fatalf("unexpected log fields %v", fields)
	}
}
