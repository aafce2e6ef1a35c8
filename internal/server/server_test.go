package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CloverPit_Go/internal/concurrency"
	"github.com/osse101/CloverPit_Go/internal/config"
	"github.com/osse101/CloverPit_Go/internal/database/memory"
	"github.com/osse101/CloverPit_Go/internal/domain"
	"github.com/osse101/CloverPit_Go/internal/game"
	"github.com/osse101/CloverPit_Go/internal/ratelimit"
	"github.com/osse101/CloverPit_Go/internal/slots"
)

const testAPIKey = "test-api-key"

// scriptedRandom deals the same losing grid every spin and always earns the most tickets
type scriptedRandom struct {
	mu   sync.Mutex
	next int
}

var scriptedSymbols = []domain.Symbol{
	slots.SymbolCherry, slots.SymbolLemon, slots.SymbolOrange, slots.SymbolBell, slots.SymbolDiamond,
	slots.SymbolOrange, slots.SymbolBell, slots.SymbolDiamond, slots.SymbolCherry, slots.SymbolLemon,
	slots.SymbolDiamond, slots.SymbolCherry, slots.SymbolLemon, slots.SymbolOrange, slots.SymbolBell,
}

func (r *scriptedRandom) UniformSymbol() domain.Symbol {
	r.mu.Lock()
	defer r.mu.Unlock()
	sym := scriptedSymbols[r.next%len(scriptedSymbols)]
	r.next++
	return sym
}

func (r *scriptedRandom) UniformInt(_, hi int) int {
	return hi
}

func newTestRouter(t *testing.T, limit int) (http.Handler, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	_, err := store.InsertItem(context.Background(), &domain.Item{
		Name: "Lucky Clover", Rarity: domain.RarityCommon, Price: 3,
		EffectType: domain.EffectTypeMultiplier, EffectValue: 1.2,
	})
	require.NoError(t, err)

	locks := concurrency.NewLockManager(concurrency.NewMemoryStore(),
		concurrency.WithPollIntervals(time.Millisecond, 5*time.Millisecond))
	svc := game.NewService(store, locks, slots.NewEngine(&scriptedRandom{}))

	limiter, err := ratelimit.NewMemoryLimiter(limit, time.Minute, ratelimit.DefaultMaxKeys)
	require.NoError(t, err)

	cfg := &config.Config{Port: 0, APIKey: testAPIKey, Environment: "dev", Version: "test"}
	return NewRouter(cfg, nil, svc, limiter), store
}

func call(t *testing.T, router http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set(HeaderAPIKey, testAPIKey)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var out map[string]interface{}
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestRouter_GameFlow(t *testing.T) {
	router, _ := newTestRouter(t, 100)

	rec, started := call(t, router, http.MethodPost, "/api/v1/games", map[string]string{"player_name": "Lucky"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, true, started["success"])
	sessionID, ok := started["session_id"].(string)
	require.True(t, ok)
	assert.Len(t, sessionID, domain.SessionIDLength)
	assert.EqualValues(t, domain.StartingMoney, started["money"])
	assert.EqualValues(t, domain.StartingDebt, started["debt"])
	assert.EqualValues(t, domain.StartingTickets, started["tickets"])

	rec, spin := call(t, router, http.MethodPost, "/api/v1/games/"+sessionID+"/spin", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.EqualValues(t, 10, spin["bet_amount"])
	assert.Len(t, spin["result"], domain.GridRows)
	assert.EqualValues(t, 0, spin["win_amount"])
	assert.EqualValues(t, 3, spin["tickets_earned"])

	rec, shop := call(t, router, http.MethodGet, "/api/v1/shop/items", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items, ok := shop["items"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
	itemID := items[0].(map[string]interface{})["id"]

	rec, bought := call(t, router, http.MethodPost, "/api/v1/games/"+sessionID+"/items", map[string]interface{}{"item_id": itemID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.EqualValues(t, 1, bought["quantity"])

	rec, state := call(t, router, http.MethodGet, "/api/v1/games/"+sessionID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, state["items"], 1)

	rec, history := call(t, router, http.MethodGet, "/api/v1/games/"+sessionID+"/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	records, ok := history["history"].([]interface{})
	require.True(t, ok)
	require.Len(t, records, 1)
	assert.Equal(t, spin["new_money"], records[0].(map[string]interface{})["money_after"])

	rec, ended := call(t, router, http.MethodPost, "/api/v1/games/"+sessionID+"/end-round", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, ended, "game_over")
}

func TestRouter_Errors(t *testing.T) {
	router, _ := newTestRouter(t, 100)

	t.Run("malformed session id", func(t *testing.T) {
		rec, body := call(t, router, http.MethodPost, "/api/v1/games/not-a-session/spin", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, false, body["success"])
	})

	t.Run("unknown session", func(t *testing.T) {
		rec, _ := call(t, router, http.MethodGet, "/api/v1/games/ffffffffffffffffffffffffffffffff", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing api key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/shop/items", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("oversized body", func(t *testing.T) {
		big := map[string]string{"player_name": string(bytes.Repeat([]byte("a"), MaxRequestBodyBytes+1))}
		rec, _ := call(t, router, http.MethodPost, "/api/v1/games", big)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})
}

func TestRouter_PublicEndpoints(t *testing.T) {
	router, _ := newTestRouter(t, 1)

	for _, path := range []string{"/healthz", "/readyz", "/version", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, HeaderValueDeny, rec.Header().Get(HeaderFrameOptions), path)
	}
}

func TestRouter_RateLimited(t *testing.T) {
	router, _ := newTestRouter(t, 2)

	for i := 0; i < 2; i++ {
		rec, _ := call(t, router, http.MethodGet, "/api/v1/shop/items", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, body := call(t, router, http.MethodGet, "/api/v1/shop/items", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, false, body["success"])
}
