package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Mothroom/D-D-Lite/internal/catalog"
	"github.com/Mothroom/D-D-Lite/internal/repos/ledger"
	"github.com/Mothroom/D-D-Lite/internal/services/shop"
	"github.com/go-chi/chi/v5"
)

// HandlerProvider wraps the trade engine and the catalog client and
// exposes HTTP handlers.
type HandlerProvider struct {
	svc *shop.Service
	cat *catalog.Client
}

// NewHandler returns a new Handler provider.
func NewHandler(svc *shop.Service, cat *catalog.Client) *HandlerProvider {
	return &HandlerProvider{svc: svc, cat: cat}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeErrorKind(w http.ResponseWriter, status int, kind string) {
	writeJSON(w, status, map[string]string{"errorKind": kind})
}

// writeTradeError maps engine and store sentinels onto the wire error
// taxonomy and status codes.
func writeTradeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shop.ErrInvalidRequest):
		writeErrorKind(w, http.StatusBadRequest, "InvalidRequest")
	case errors.Is(err, ledger.ErrUserNotFound):
		writeErrorKind(w, http.StatusNotFound, "UserNotFound")
	case errors.Is(err, ledger.ErrInventoryNotFound):
		writeErrorKind(w, http.StatusNotFound, "InventoryNotFound")
	case errors.Is(err, ledger.ErrInsufficientFunds):
		writeErrorKind(w, http.StatusBadRequest, "InsufficientFunds")
	case errors.Is(err, ledger.ErrNotOwned):
		writeErrorKind(w, http.StatusBadRequest, "NotOwned")
	case errors.Is(err, ledger.ErrConflict):
		writeErrorKind(w, http.StatusConflict, "StorageConflict")
	default:
		slog.Error("trade failed", "error", err)
		writeErrorKind(w, http.StatusInternalServerError, "StorageUnavailable")
	}
}

// --- Trade handlers ---

type tradeRequest struct {
	UserID        uint64 `json:"userId"        validate:"required"`
	EquipmentName string `json:"equipmentName" validate:"required"`
}

// GetGoldHandler handles GET /store/gold?userId=N
func (h *HandlerProvider) GetGoldHandler(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("userId")

	userID, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || userID == 0 {
		writeErrorKind(w, http.StatusBadRequest, "InvalidRequest")
		return
	}

	gold, err := h.svc.Balance(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ledger.ErrUserNotFound) {
			writeErrorKind(w, http.StatusNotFound, "UserNotFound")
			return
		}

		slog.Error("get gold failed", "error", err)
		writeErrorKind(w, http.StatusInternalServerError, "StorageUnavailable")

		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"gold": gold})
}

// BuyHandler handles POST /store/buy
func (h *HandlerProvider) BuyHandler(w http.ResponseWriter, r *http.Request) {
	h.trade(w, r, shop.TradeBuy)
}

// SellHandler handles POST /store/sell
func (h *HandlerProvider) SellHandler(w http.ResponseWriter, r *http.Request) {
	h.trade(w, r, shop.TradeSell)
}

func (h *HandlerProvider) trade(w http.ResponseWriter, r *http.Request, kind shop.TradeKind) {
	var req tradeRequest

	err := decodeJSON(w, r, &req)
	if err != nil {
		writeErrorKind(w, http.StatusBadRequest, "InvalidRequest")
		return
	}

	res, err := h.svc.Trade(r.Context(), shop.TradeRequest{
		UserID:   req.UserID,
		ItemName: req.EquipmentName,
		Kind:     kind,
	})
	if err != nil {
		writeTradeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"gold": res.Gold})
}

// --- Catalog handlers ---

// ListEquipmentHandler handles GET /store/equipment
func (h *HandlerProvider) ListEquipmentHandler(w http.ResponseWriter, r *http.Request) {
	refs, err := h.cat.Equipment(r.Context())
	if err != nil {
		slog.Error("list equipment failed", "error", err)
		writeErrorKind(w, http.StatusInternalServerError, "CatalogUnavailable")

		return
	}

	writeJSON(w, http.StatusOK, refs)
}

// ListMagicItemsHandler handles GET /store/magic-items
func (h *HandlerProvider) ListMagicItemsHandler(w http.ResponseWriter, r *http.Request) {
	refs, err := h.cat.MagicItems(r.Context())
	if err != nil {
		slog.Error("list magic items failed", "error", err)
		writeErrorKind(w, http.StatusInternalServerError, "CatalogUnavailable")

		return
	}

	writeJSON(w, http.StatusOK, refs)
}

// GetEquipmentHandler handles GET /store/equipment/{index}
func (h *HandlerProvider) GetEquipmentHandler(w http.ResponseWriter, r *http.Request) {
	index := chi.URLParam(r, "index")
	if index == "" {
		writeErrorKind(w, http.StatusBadRequest, "InvalidRequest")
		return
	}

	doc, err := h.cat.EquipmentByIndex(r.Context(), index)
	if err != nil {
		slog.Error("get equipment failed", "index", index, "error", err)
		writeErrorKind(w, http.StatusInternalServerError, "CatalogUnavailable")

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}
