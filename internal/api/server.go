package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Mothroom/D-D-Lite/internal/catalog"
	"github.com/Mothroom/D-D-Lite/internal/services/shop"
)

// NewServer creates and returns a configured *http.Server for the store API.
func NewServer(port uint16, svc *shop.Service, cat *catalog.Client) *http.Server {
	mux := NewRouter(svc, cat)

	addr := fmt.Sprintf(":%d", port)

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
