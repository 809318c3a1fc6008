package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"

	"chaoscatering/internal/ai"
	applog "chaoscatering/internal/log"
	"chaoscatering/internal/workspace"
	"chaoscatering/models"
)

// Assistant is the AI extraction service used by the upload endpoints.
// *ai.Client satisfies it.
type Assistant interface {
	ExtractMenu(ctx context.Context, doc ai.Attachment) (ai.MenuExtraction, error)
	SuggestPrices(ctx context.Context, names []string) (map[string]ai.PriceSuggestion, error)
	SuggestPrice(ctx context.Context, name string) (ai.PriceSuggestion, error)
	ExtractInvoice(ctx context.Context, doc ai.Attachment) (ai.InvoiceExtraction, error)
	ExtractSupplierCard(ctx context.Context, doc ai.Attachment) (ai.SupplierCard, error)
}

const maxUploadBytes = 20 << 20

var (
	kitchen      *workspace.Workspace
	assistant    Assistant
	prepSections []models.Section
	now          = time.Now
)

// ConfigureKitchen installs the workspace served by the /app API. A nil
// sections list tracks the default prep stations.
func ConfigureKitchen(ws *workspace.Workspace, sections []models.Section) {
	kitchen = ws
	prepSections = sections
}

// ConfigureAI installs the assistant used by the upload endpoints.
func ConfigureAI(a Assistant) {
	assistant = a
}

func kitchenReady(w http.ResponseWriter, r *http.Request) bool {
	if kitchen == nil {
		applog.Debug(r.Context(), "kitchen request without workspace", "path", r.URL.Path)
		writeJSONError(w, http.StatusServiceUnavailable, "service unavailable")
		return false
	}
	return true
}

func assistantReady(w http.ResponseWriter, r *http.Request) bool {
	if assistant == nil {
		applog.Debug(r.Context(), "ai request without assistant", "path", r.URL.Path)
		writeJSONError(w, http.StatusServiceUnavailable, "AI integration is not configured. Set OPENAI_API_KEY to enable uploads.")
		return false
	}
	return true
}

// resourcePath splits what follows prefix into path segments.
func resourcePath(r *http.Request, prefix string) []string {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// decodeJSON reads a request body into dst after normalising its amount
// fields.
func decodeJSON(r *http.Request, dst any) error {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	normalized, err := normalizeAmounts(raw)
	if err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	if err := json.Unmarshal(normalized, dst); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	return nil
}

// writeWorkspaceError maps workspace sentinels to HTTP statuses.
func writeWorkspaceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	switch {
	case errors.Is(err, workspace.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "not found")
	case errors.Is(err, workspace.ErrDerivedIngredient):
		writeJSONError(w, http.StatusConflict, "ingredients made in-house are edited through their sub-recipe")
	case errors.Is(err, workspace.ErrDuplicateID):
		writeJSONError(w, http.StatusConflict, "id already in use")
	case errors.Is(err, workspace.ErrInvalid):
		writeJSONError(w, http.StatusBadRequest, strings.TrimPrefix(err.Error(), "workspace: invalid record: "))
	default:
		applog.Error(r.Context(), "kitchen request failed", "action", action, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to "+action)
	}
}

// readUpload reads the "file" field of a multipart form into an attachment.
func readUpload(w http.ResponseWriter, r *http.Request) (ai.Attachment, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		return ai.Attachment{}, fmt.Errorf("read upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return ai.Attachment{}, fmt.Errorf("read upload: %w", err)
	}
	mime := header.Header.Get("Content-Type")
	if mime == "application/octet-stream" {
		mime = ""
	}
	return ai.DeriveAttachment(header.Filename, data, mime)
}

func renderComponent(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render component", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
