package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"chaoscatering/internal/invoice"
	applog "chaoscatering/internal/log"
	"chaoscatering/models"
)

type supplierResponse struct {
	models.Supplier
	TotalSpend float64 `json:"totalSpend"`
}

// SupplierResource serves /app/api/suppliers.
func SupplierResource(w http.ResponseWriter, r *http.Request) {
	if !kitchenReady(w, r) {
		return
	}

	segments := resourcePath(r, "/app/api/suppliers")
	if len(segments) == 0 {
		switch r.Method {
		case http.MethodGet:
			snapshot := kitchen.Snapshot()
			out := make([]supplierResponse, 0, len(snapshot.Suppliers))
			for _, s := range snapshot.Suppliers {
				out = append(out, supplierResponse{Supplier: s, TotalSpend: invoice.TotalSpend(snapshot.Invoices, s.Name)})
			}
			writeJSON(w, http.StatusOK, out)
		case http.MethodPost:
			saveSupplier(w, r, "")
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}
	if len(segments) > 1 {
		http.NotFound(w, r)
		return
	}

	if segments[0] == "scan" {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		scanSupplierCard(w, r)
		return
	}

	id := segments[0]
	switch r.Method {
	case http.MethodGet:
		s, err := kitchen.Supplier(id)
		if err != nil {
			writeWorkspaceError(w, r, err, "load supplier")
			return
		}
		writeJSON(w, http.StatusOK, supplierResponse{Supplier: s, TotalSpend: invoice.TotalSpend(kitchen.Snapshot().Invoices, s.Name)})
	case http.MethodPut:
		saveSupplier(w, r, id)
	case http.MethodDelete:
		if err := kitchen.DeleteSupplier(r.Context(), id); err != nil {
			writeWorkspaceError(w, r, err, "delete supplier")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func saveSupplier(w http.ResponseWriter, r *http.Request, id string) {
	var payload models.Supplier
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(r.Context(), "invalid supplier payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	var (
		s      models.Supplier
		err    error
		status = http.StatusOK
	)
	if id == "" {
		s, err = kitchen.CreateSupplier(r.Context(), payload)
		status = http.StatusCreated
	} else {
		s, err = kitchen.UpdateSupplier(r.Context(), id, payload)
	}
	if err != nil {
		writeWorkspaceError(w, r, err, "save supplier")
		return
	}
	writeJSON(w, status, supplierResponse{Supplier: s})
}

// scanSupplierCard reads a business card or letterhead and files the
// supplier it names.
func scanSupplierCard(w http.ResponseWriter, r *http.Request) {
	if !assistantReady(w, r) {
		return
	}
	ctx := r.Context()

	doc, err := readUpload(w, r)
	if err != nil {
		applog.Debug(ctx, "invalid supplier card upload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "upload a readable card image or document")
		return
	}

	card, err := assistant.ExtractSupplierCard(ctx, doc)
	if err != nil {
		applog.Error(ctx, "supplier card extraction failed", "error", err, "file", doc.FileName)
		writeJSONError(w, http.StatusBadGateway, "could not read the supplier card")
		return
	}

	s, err := kitchen.CreateSupplier(ctx, invoice.SupplierFromCard(card, uuid.NewString))
	if err != nil {
		writeWorkspaceError(w, r, err, "save supplier")
		return
	}
	applog.Info(ctx, "supplier scanned", "supplier", s.Name)
	writeJSON(w, http.StatusCreated, supplierResponse{Supplier: s})
}
