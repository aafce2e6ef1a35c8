package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CloverPit_Go/internal/domain"
)

const testSessionID = "0123456789abcdef0123456789abcdef"

// MockGameService mocks game.Service
type MockGameService struct {
	mock.Mock
}

func (m *MockGameService) Start(ctx context.Context, playerName string) (*domain.StartResult, error) {
	args := m.Called(ctx, playerName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StartResult), args.Error(1)
}

func (m *MockGameService) Spin(ctx context.Context, sessionID string) (*domain.SpinResult, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpinResult), args.Error(1)
}

func (m *MockGameService) EndRound(ctx context.Context, sessionID string) (*domain.EndRoundResult, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EndRoundResult), args.Error(1)
}

func (m *MockGameService) BuyItem(ctx context.Context, sessionID string, itemID int) (*domain.BuyItemResult, error) {
	args := m.Called(ctx, sessionID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BuyItemResult), args.Error(1)
}

func (m *MockGameService) GetState(ctx context.Context, sessionID string) (*domain.GameState, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GameState), args.Error(1)
}

func (m *MockGameService) GetHistory(ctx context.Context, sessionID string) ([]domain.HistoryRecord, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoryRecord), args.Error(1)
}

func (m *MockGameService) ListShopItems(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockGameService) InvalidateShopCache() {
	m.Called()
}

func (m *MockGameService) Shutdown(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// newTestRouter mounts the game routes the same way the server does
func newTestRouter(svc *MockGameService) http.Handler {
	h := NewGameHandler(svc)
	r := chi.NewRouter()
	r.Post("/games", h.HandleStartGame)
	r.Get("/games/{sessionID}", h.HandleGetGame)
	r.Get("/games/{sessionID}/history", h.HandleGetHistory)
	r.Post("/games/{sessionID}/spin", h.HandleSpin)
	r.Post("/games/{sessionID}/end-round", h.HandleEndRound)
	r.Post("/games/{sessionID}/items", h.HandleBuyItem)
	r.Get("/shop/items", h.HandleListShopItems)
	return r
}

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", ContentTypeJSON)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHandleStartGame(t *testing.T) {
	tests := []struct {
		name           string
		reqBody        interface{}
		setupMocks     func(*MockGameService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "Success",
			reqBody: StartGameRequest{PlayerName: "Lucky"},
			setupMocks: func(m *MockGameService) {
				m.On("Start", mock.Anything, "Lucky").Return(&domain.StartResult{
					SessionID: testSessionID, PlayerName: "Lucky",
					Money: 100, Debt: 75, Round: 1, Tickets: 3,
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"session_id":"` + testSessionID + `"`,
		},
		{
			name:           "Invalid JSON",
			reqBody:        "invalid json",
			setupMocks:     func(m *MockGameService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name:           "Missing Name",
			reqBody:        map[string]string{},
			setupMocks:     func(m *MockGameService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"player_name":"This field is required"`,
		},
		{
			name:           "HTML Name",
			reqBody:        StartGameRequest{PlayerName: "<b>x</b>"},
			setupMocks:     func(m *MockGameService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgValidationNoHTML,
		},
		{
			name:    "Service Validation Error",
			reqBody: StartGameRequest{PlayerName: strings.Repeat("a", 51)},
			setupMocks: func(m *MockGameService) {
				m.On("Start", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: player name must be 1-50 characters", domain.ErrValidationFailure))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "player name must be 1-50 characters",
		},
		{
			name:    "Persistence Error Is Opaque",
			reqBody: StartGameRequest{PlayerName: "Lucky"},
			setupMocks: func(m *MockGameService) {
				m.On("Start", mock.Anything, "Lucky").
					Return(nil, fmt.Errorf("%w: connection reset by peer", domain.ErrPersistenceFailure))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   ErrMsgGenericServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockGameService{}
			tt.setupMocks(svc)

			w := doRequest(t, newTestRouter(svc), http.MethodPost, "/games", tt.reqBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			assert.NotContains(t, w.Body.String(), "connection reset")
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleStartGame_Envelope(t *testing.T) {
	svc := &MockGameService{}
	svc.On("Start", mock.Anything, "Lucky").Return(&domain.StartResult{
		SessionID: testSessionID, PlayerName: "Lucky", Money: 100, Debt: 75, Round: 1, Tickets: 3,
	}, nil)

	w := doRequest(t, newTestRouter(svc), http.MethodPost, "/games", StartGameRequest{PlayerName: "Lucky"})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Lucky", body["player_name"])
	assert.EqualValues(t, 100, body["money"])
	assert.EqualValues(t, 75, body["debt"])
	assert.EqualValues(t, 3, body["tickets"])
}

func TestHandleSpin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := &MockGameService{}
		svc.On("Spin", mock.Anything, testSessionID).Return(&domain.SpinResult{
			Payout: 1000, Multiplier: 1, BetAmount: 10, NetChange: 990,
			NewMoney: 1090, TicketsEarned: 2, NewTickets: 5,
			WinLines: []domain.WinLine{{Name: "상단 가로", Symbol: "7️⃣", Count: 3, Amount: 1000}},
		}, nil)

		w := doRequest(t, newTestRouter(svc), http.MethodPost, "/games/"+testSessionID+"/spin", nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, true, body["success"])
		assert.EqualValues(t, 1000, body["win_amount"])
		assert.EqualValues(t, 10, body["bet_amount"])
		assert.EqualValues(t, 1090, body["new_money"])
		assert.Len(t, body["win_lines"], 1)
		svc.AssertExpectations(t)
	})

	errorCases := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{"not found", domain.ErrSessionNotFound, http.StatusNotFound, ErrMsgSessionNotFound},
		{"game over", domain.ErrSessionTerminal, http.StatusConflict, ErrMsgGameOver},
		{"insufficient funds", fmt.Errorf("%w: need 10", domain.ErrInsufficientFunds), http.StatusUnprocessableEntity, ErrMsgNotEnoughMoney},
		{"bad session id", fmt.Errorf("%w: invalid session id", domain.ErrValidationFailure), http.StatusBadRequest, "invalid session id"},
		{"persistence", fmt.Errorf("%w: tx aborted", domain.ErrPersistenceFailure), http.StatusInternalServerError, ErrMsgGenericServerError},
	}

	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &MockGameService{}
			svc.On("Spin", mock.Anything, testSessionID).Return(nil, tc.err)

			w := doRequest(t, newTestRouter(svc), http.MethodPost, "/games/"+testSessionID+"/spin", nil)

			assert.Equal(t, tc.expectedStatus, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, false, body["success"])
			assert.Contains(t, body["error"], tc.expectedBody)
			assert.Empty(t, w.Header().Get(HeaderRetryAfter))
		})
	}

	t.Run("lock contention is retryable", func(t *testing.T) {
		svc := &MockGameService{}
		svc.On("Spin", mock.Anything, testSessionID).
			Return(nil, fmt.Errorf("%w: session:%s", domain.ErrLockContention, testSessionID))

		w := doRequest(t, newTestRouter(svc), http.MethodPost, "/games/"+testSessionID+"/spin", nil)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, RetryAfterContention, w.Header().Get(HeaderRetryAfter))
		assert.Contains(t, w.Body.String(), ErrMsgOperationInProgress)
	})
}

func TestHandleEndRound(t *testing.T) {
	t.Run("Cleared", func(t *testing.T) {
		round, money, debt, bonus, tickets := 2, int64(50), 75.0, 5, 9
		svc := &MockGameService{}
		svc.On("EndRound", mock.Anything, testSessionID).Return(&domain.EndRoundResult{
			Message: "Round cleared", NewRound: &round, NewMoney: &money,
			NewDebt: &debt, BonusTickets: &bonus, NewTickets: &tickets,
		}, nil)

		w := doRequest(t, newTestRouter(svc), http.MethodPost, "/games/"+testSessionID+"/end-round", nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, false, body["game_over"])
		assert.EqualValues(t, 2, body["new_round"])
		assert.EqualValues(t, 5, body["bonus_tickets"])
		assert.NotContains(t, body, "final_round")
	})

	t.Run("Game Over", func(t *testing.T) {
		svc := &MockGameService{}
		svc.On("EndRound", mock.Anything, testSessionID).Return(&domain.EndRoundResult{
			GameOver: true, Message: "Game over", FinalRound: 3,
		}, nil)

		w := doRequest(t, newTestRouter(svc), http.MethodPost, "/games/"+testSessionID+"/end-round", nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, true, body["game_over"])
		assert.EqualValues(t, 3, body["final_round"])
		assert.NotContains(t, body, "new_round")
	})
}

func TestHandleBuyItem(t *testing.T) {
	path := "/games/" + testSessionID + "/items"

	t.Run("Success", func(t *testing.T) {
		svc := &MockGameService{}
		svc.On("BuyItem", mock.Anything, testSessionID, 4).Return(&domain.BuyItemResult{
			Item:     domain.Item{ID: 4, Name: "Lucky Clover", Price: 3, EffectType: domain.EffectTypeMultiplier, EffectValue: 1.2},
			Quantity: 1, NewTickets: 0, NewMoney: 100, NewDebt: 75,
		}, nil)

		w := doRequest(t, newTestRouter(svc), http.MethodPost, path, BuyItemRequest{ItemID: 4})
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, true, body["success"])
		assert.EqualValues(t, 1, body["quantity"])
		item, ok := body["item"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "Lucky Clover", item["name"])
		svc.AssertExpectations(t)
	})

	t.Run("Zero Item ID", func(t *testing.T) {
		svc := &MockGameService{}

		w := doRequest(t, newTestRouter(svc), http.MethodPost, path, BuyItemRequest{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"item_id"`)
		svc.AssertNotCalled(t, "BuyItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Insufficient Tickets", func(t *testing.T) {
		svc := &MockGameService{}
		svc.On("BuyItem", mock.Anything, testSessionID, 7).Return(nil, domain.ErrInsufficientTickets)

		w := doRequest(t, newTestRouter(svc), http.MethodPost, path, BuyItemRequest{ItemID: 7})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgNotEnoughTickets)
	})

	t.Run("Item Not Found", func(t *testing.T) {
		svc := &MockGameService{}
		svc.On("BuyItem", mock.Anything, testSessionID, 99).Return(nil, domain.ErrItemNotFound)

		w := doRequest(t, newTestRouter(svc), http.MethodPost, path, BuyItemRequest{ItemID: 99})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Body Too Large", func(t *testing.T) {
		svc := &MockGameService{}
		h := NewGameHandler(svc)
		r := chi.NewRouter()
		r.Post("/games/{sessionID}/items", func(w http.ResponseWriter, req *http.Request) {
			req.Body = http.MaxBytesReader(w, req.Body, 8)
			h.HandleBuyItem(w, req)
		})

		w := doRequest(t, r, http.MethodPost, path, `{"item_id": 1, "padding": "xxxxxxxxxxxxxxxx"}`)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgRequestTooLarge)
	})
}

func TestHandleGetGame(t *testing.T) {
	svc := &MockGameService{}
	svc.On("GetState", mock.Anything, testSessionID).Return(&domain.GameState{
		Session: domain.GameSession{SessionID: testSessionID, PlayerName: "Lucky", Money: 100, Debt: 75, Round: 1, Tickets: 3},
		Items:   []domain.PlayerItem{{Item: domain.Item{ID: 1, Name: "Lucky Clover"}, Quantity: 2}},
	}, nil)
	svc.On("GetState", mock.Anything, "missing").Return(nil, domain.ErrSessionNotFound)

	router := newTestRouter(svc)

	w := doRequest(t, router, http.MethodGet, "/games/"+testSessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	game, ok := body["game"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Lucky", game["player_name"])
	assert.Len(t, body["items"], 1)

	w = doRequest(t, router, http.MethodGet, "/games/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleGetHistory(t *testing.T) {
	svc := &MockGameService{}
	svc.On("GetHistory", mock.Anything, testSessionID).Return([]domain.HistoryRecord{
		{ID: 1, SessionID: testSessionID, Round: 1, MoneyChange: -10, MoneyAfter: 90, DebtAfter: 75},
	}, nil)
	svc.On("GetHistory", mock.Anything, "missing").Return(nil, domain.ErrSessionNotFound)

	router := newTestRouter(svc)

	w := doRequest(t, router, http.MethodGet, "/games/"+testSessionID+"/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	history, ok := body["history"].([]interface{})
	require.True(t, ok)
	require.Len(t, history, 1)
	assert.EqualValues(t, 90, history[0].(map[string]interface{})["money_after"])

	w = doRequest(t, router, http.MethodGet, "/games/missing/history", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, ErrMsgSessionNotFound, decodeBody(t, w)["error"])
}

func TestHandleListShopItems(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := &MockGameService{}
		svc.On("ListShopItems", mock.Anything).Return([]domain.Item{
			{ID: 1, Name: "Pocket Change", Rarity: domain.RarityCommon, Price: 2},
			{ID: 2, Name: "Lucky Clover", Rarity: domain.RarityCommon, Price: 3},
		}, nil)

		w := doRequest(t, newTestRouter(svc), http.MethodGet, "/shop/items", nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, true, body["success"])
		assert.Len(t, body["items"], 2)
	})

	t.Run("Empty Catalog", func(t *testing.T) {
		svc := &MockGameService{}
		svc.On("ListShopItems", mock.Anything).Return([]domain.Item{}, nil)

		w := doRequest(t, newTestRouter(svc), http.MethodGet, "/shop/items", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"items":[]`)
	})

	t.Run("Failure", func(t *testing.T) {
		svc := &MockGameService{}
		svc.On("ListShopItems", mock.Anything).Return(nil, domain.ErrPersistenceFailure)

		w := doRequest(t, newTestRouter(svc), http.MethodGet, "/shop/items", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestMapServiceError(t *testing.T) {
	status, msg := mapServiceError(fmt.Errorf("failed to load: %w", assert.AnError))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, ErrMsgGenericServerError, msg)
}
