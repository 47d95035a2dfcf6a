package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ims24/ims24/config"
	"github.com/ims24/ims24/utils"
)

// Version is reported by the status endpoint.
const Version = "0.1.0"

// StatusResponse describes the running configuration without secrets
type StatusResponse struct {
	Version        string `json:"version"`
	Environment    string `json:"environment"`
	InstanceID     string `json:"instance_id"`
	SearchAddress  string `json:"search_address"`
	Database       string `json:"database"`
	CrawlerBaseURL string `json:"crawler_base_url"`
}

// CrawlerPageResponse carries a formatted listing URL
type CrawlerPageResponse struct {
	Page int    `json:"page"`
	URL  string `json:"url"`
}

// StatusHandler serves the resolved, non-secret configuration
type StatusHandler struct {
	cfg        *config.Config
	instanceID string
}

// NewStatusHandler creates a new StatusHandler
func NewStatusHandler(cfg *config.Config, instanceID string) *StatusHandler {
	return &StatusHandler{
		cfg:        cfg,
		instanceID: instanceID,
	}
}

// HandleStatus handles GET /api/v1/status
func (h *StatusHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteOK(w, StatusResponse{
		Version:        Version,
		Environment:    h.cfg.Environment,
		InstanceID:     h.instanceID,
		SearchAddress:  h.cfg.Search.Address(),
		Database:       h.cfg.Database.LogString(),
		CrawlerBaseURL: h.cfg.Crawler.BaseURL,
	})
}

// HandleCrawlerPage handles GET /api/v1/crawler/pages/{page}
func (h *StatusHandler) HandleCrawlerPage(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "page")

	page, err := strconv.Atoi(raw)
	if err != nil {
		_ = utils.WriteBadRequest(w, "page must be an integer", map[string]any{"page": raw})
		return
	}

	url, err := h.cfg.Crawler.PageURL(page)
	if err != nil {
		_ = utils.WriteBadRequest(w, err.Error(), map[string]any{"page": page})
		return
	}

	_ = utils.WriteOK(w, CrawlerPageResponse{Page: page, URL: url})
}
