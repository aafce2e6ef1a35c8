package handler

import (
	"net/http"

	"github.com/osse101/CloverPit_Go/internal/game"
)

// GameHandler handles game session HTTP requests
type GameHandler struct {
	service game.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(service game.Service) *GameHandler {
	return &GameHandler{service: service}
}

// StartGameRequest represents a request to start a new game.
// Length limits are enforced in runes by the service after normalisation.
type StartGameRequest struct {
	PlayerName string `json:"player_name" validate:"required,nohtml"`
}

// BuyItemRequest represents a shop purchase
type BuyItemRequest struct {
	ItemID int `json:"item_id" validate:"required,min=1"`
}

// HandleStartGame creates a new session
// @Summary Start a game
// @Description Creates a session with 100 money, 50 debt and 0 tickets
// @Tags game
// @Accept json
// @Produce json
// @Param request body StartGameRequest true "Player name"
// @Success 201 {object} StartGameResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/games [post]
func (h *GameHandler) HandleStartGame(w http.ResponseWriter, r *http.Request) {
	var req StartGameRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Start game"); err != nil {
		return
	}

	result, err := h.service.Start(r.Context(), req.PlayerName)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, StartGameResponse{Success: true, StartResult: result})
}

// HandleGetGame returns the session and its items
// @Summary Get game state
// @Tags game
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} GameStateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/games/{sessionID} [get]
func (h *GameHandler) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.GetState(r.Context(), sessionIDParam(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, GameStateResponse{Success: true, GameState: state})
}

// HandleGetHistory returns every recorded spin of the session, oldest first
// @Summary Get spin history
// @Tags game
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} HistoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/games/{sessionID}/history [get]
func (h *GameHandler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.service.GetHistory(r.Context(), sessionIDParam(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, HistoryResponse{Success: true, History: history})
}

// HandleSpin spins the slot machine for the fixed bet
// @Summary Spin
// @Tags game
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} SpinResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/games/{sessionID}/spin [post]
func (h *GameHandler) HandleSpin(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Spin(r.Context(), sessionIDParam(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, SpinResponse{Success: true, SpinResult: result})
}

// HandleEndRound pays the debt and advances the round, or ends the game
// @Summary End round
// @Tags game
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} EndRoundResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/games/{sessionID}/end-round [post]
func (h *GameHandler) HandleEndRound(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.EndRound(r.Context(), sessionIDParam(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, EndRoundResponse{Success: true, EndRoundResult: result})
}

// HandleBuyItem buys one unit of a shop item with tickets
// @Summary Buy item
// @Tags shop
// @Accept json
// @Produce json
// @Param sessionID path string true "Session ID"
// @Param request body BuyItemRequest true "Item to buy"
// @Success 200 {object} BuyItemResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/games/{sessionID}/items [post]
func (h *GameHandler) HandleBuyItem(w http.ResponseWriter, r *http.Request) {
	var req BuyItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Buy item"); err != nil {
		return
	}

	result, err := h.service.BuyItem(r.Context(), sessionIDParam(r), req.ItemID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, BuyItemResponse{Success: true, BuyItemResult: result})
}

// HandleListShopItems returns the catalog ordered by rarity then price
// @Summary List shop items
// @Tags shop
// @Produce json
// @Success 200 {object} ShopItemsResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/shop/items [get]
func (h *GameHandler) HandleListShopItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListShopItems(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, ShopItemsResponse{Success: true, Items: items})
}
