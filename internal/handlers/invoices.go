package handlers

import (
	"net/http"

	"chaoscatering/internal/invoice"
	applog "chaoscatering/internal/log"
)

type invoiceExtractResponse struct {
	Lines []invoice.Line     `json:"lines"`
	Audit []invoice.AuditRow `json:"audit"`
}

type invoiceApplyRequest struct {
	Lines []invoice.Line `json:"lines"`
}

// InvoiceResource serves /app/api/invoices. Extraction only previews the
// lines and their audit; prices are recorded by a separate apply call.
func InvoiceResource(w http.ResponseWriter, r *http.Request) {
	if !kitchenReady(w, r) {
		return
	}

	segments := resourcePath(r, "/app/api/invoices")
	switch {
	case len(segments) == 0:
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, kitchen.Snapshot().Invoices)
		case http.MethodPost:
			applyInvoice(w, r)
		case http.MethodDelete:
			kitchen.ClearInvoices(r.Context())
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	case len(segments) == 1 && segments[0] == "extract":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		extractInvoice(w, r)
	case len(segments) == 1 && segments[0] == "audit":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var payload invoiceApplyRequest
		if err := decodeJSON(r, &payload); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid request payload")
			return
		}
		writeJSON(w, http.StatusOK, invoice.Audit(kitchen.Snapshot().Ingredients, payload.Lines))
	default:
		http.NotFound(w, r)
	}
}

func extractInvoice(w http.ResponseWriter, r *http.Request) {
	if !assistantReady(w, r) {
		return
	}
	ctx := r.Context()

	doc, err := readUpload(w, r)
	if err != nil {
		applog.Debug(ctx, "invalid invoice upload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "upload a readable invoice")
		return
	}

	extraction, err := assistant.ExtractInvoice(ctx, doc)
	if err != nil {
		applog.Error(ctx, "invoice extraction failed", "error", err, "file", doc.FileName)
		writeJSONError(w, http.StatusBadGateway, "could not read the invoice")
		return
	}

	lines := invoice.Lines(extraction, doc.FileName, now())
	writeJSON(w, http.StatusOK, invoiceExtractResponse{
		Lines: lines,
		Audit: invoice.Audit(kitchen.Snapshot().Ingredients, lines),
	})
}

func applyInvoice(w http.ResponseWriter, r *http.Request) {
	var payload invoiceApplyRequest
	if err := decodeJSON(r, &payload); err != nil {
		applog.Debug(r.Context(), "invalid invoice payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := kitchen.ApplyInvoice(r.Context(), payload.Lines)
	if err != nil {
		writeWorkspaceError(w, r, err, "apply invoice")
		return
	}
	writeJSON(w, http.StatusCreated, result)
}
