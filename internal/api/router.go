package api

import (
	"net/http"

	"github.com/Mothroom/D-D-Lite/internal/catalog"
	"github.com/Mothroom/D-D-Lite/internal/services/shop"
	"github.com/go-chi/chi/v5"
)

// NewRouter constructs the router with all store endpoints registered.
func NewRouter(svc *shop.Service, cat *catalog.Client) http.Handler {
	h := NewHandler(svc, cat)
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(RequestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/store", func(r chi.Router) {
		r.Get("/equipment", h.ListEquipmentHandler)
		r.Get("/equipment/{index}", h.GetEquipmentHandler)
		r.Get("/magic-items", h.ListMagicItemsHandler)

		r.Get("/gold", h.GetGoldHandler)
		r.Post("/buy", h.BuyHandler)
		r.Post("/sell", h.SellHandler)
	})

	return r
}
