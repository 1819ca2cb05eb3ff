package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"shield-data-lab/internal/dataset"
	"shield-data-lab/internal/domain"
	"shield-data-lab/internal/stats"
)

// previewLimit caps sample endpoints; the API previews a dataset, full
// exports go through CSV or the staging import.
const (
	defaultPreviewRows = 50
	maxPreviewRows     = 1000
)

// Handler serves a generated dataset read-only.
type Handler struct {
	data    *dataset.Dataset
	summary *stats.Summary
}

// NewHandler wraps one generated dataset. The dataset is immutable after
// generation, so handlers need no locking.
func NewHandler(d *dataset.Dataset, s *stats.Summary) *Handler {
	return &Handler{data: d, summary: s}
}

// GetSummary returns the run summary.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ok(w, h.summary)
}

// ListCustomers returns the first rows of the customer table.
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	limit, err := previewRows(r)
	if err != nil {
		badRequest(w, "INVALID_LIMIT", err.Error())
		return
	}
	if limit > len(h.data.Customers) {
		limit = len(h.data.Customers)
	}
	ok(w, h.data.Customers[:limit])
}

// ListMerchants returns the first rows of the merchant registry.
func (h *Handler) ListMerchants(w http.ResponseWriter, r *http.Request) {
	limit, err := previewRows(r)
	if err != nil {
		badRequest(w, "INVALID_LIMIT", err.Error())
		return
	}
	if limit > len(h.data.Merchants) {
		limit = len(h.data.Merchants)
	}
	ok(w, h.data.Merchants[:limit])
}

// ListTransactions returns a transaction preview, optionally restricted to
// fraud rows or one fraud type.
//
// Query params:
//
//	limit      — rows to return (default 50, max 1000)
//	fraud_only — "true" keeps only fraud rows
//	fraud_type — keep only one pattern, implies fraud_only
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	limit, err := previewRows(r)
	if err != nil {
		badRequest(w, "INVALID_LIMIT", err.Error())
		return
	}

	fraudOnly := r.URL.Query().Get("fraud_only") == "true"
	fraudType := domain.FraudType(r.URL.Query().Get("fraud_type"))
	if fraudType != "" {
		valid := false
		for _, ft := range domain.FraudTypes {
			if ft == fraudType {
				valid = true
				break
			}
		}
		if !valid {
			badRequest(w, "INVALID_FRAUD_TYPE", fmt.Sprintf("unknown fraud type %q", fraudType))
			return
		}
		fraudOnly = true
	}

	out := make([]*domain.Transaction, 0, limit)
	for _, tx := range h.data.Transactions {
		if fraudOnly && !tx.IsFraud {
			continue
		}
		if fraudType != "" && tx.FraudType != fraudType {
			continue
		}
		out = append(out, tx)
		if len(out) == limit {
			break
		}
	}
	ok(w, out)
}

// GetTransaction returns one transaction with its fingerprint and alert, if
// any.
func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var tx *domain.Transaction
	for _, t := range h.data.Transactions {
		if t.TransactionID == id {
			tx = t
			break
		}
	}
	if tx == nil {
		notFound(w, fmt.Sprintf("transaction %q not found", id))
		return
	}

	detail := struct {
		Transaction *domain.Transaction `json:"transaction"`
		Device      *domain.Device      `json:"device,omitempty"`
		Alert       *domain.Alert       `json:"alert,omitempty"`
	}{Transaction: tx}

	for _, d := range h.data.Devices {
		if d.TransactionID == id {
			detail.Device = d
			break
		}
	}
	for _, a := range h.data.Alerts {
		if a.TransactionID == id {
			detail.Alert = a
			break
		}
	}
	ok(w, detail)
}

// ListAlerts returns the first rows of the alert history.
func (h *Handler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	limit, err := previewRows(r)
	if err != nil {
		badRequest(w, "INVALID_LIMIT", err.Error())
		return
	}
	if limit > len(h.data.Alerts) {
		limit = len(h.data.Alerts)
	}
	ok(w, h.data.Alerts[:limit])
}

func previewRows(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultPreviewRows, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("limit must be a positive integer")
	}
	if n > maxPreviewRows {
		n = maxPreviewRows
	}
	return n, nil
}
