package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"chaoscatering/internal/ingest"
	applog "chaoscatering/internal/log"
)

// MenuResource serves /app/api/menu: the costing summary, the CSV export and
// the two ways of bringing dishes in.
func MenuResource(w http.ResponseWriter, r *http.Request) {
	if !kitchenReady(w, r) {
		return
	}

	segments := resourcePath(r, "/app/api/menu")
	if len(segments) != 1 {
		http.NotFound(w, r)
		return
	}

	switch segments[0] {
	case "summary":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, kitchen.Summary())
	case "export.csv":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		exportMenu(w, r)
	case "import":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		importMenuCSV(w, r)
	case "extract":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		extractMenu(w, r)
	default:
		http.NotFound(w, r)
	}
}

func exportMenu(w http.ResponseWriter, r *http.Request) {
	snapshot := kitchen.Snapshot()

	var buf bytes.Buffer
	if err := ingest.WriteMenuCSV(&buf, snapshot.Dishes, snapshot.Catalog()); err != nil {
		applog.Error(r.Context(), "failed to write menu export", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to export menu")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ingest.ExportFileName(now())))
	if _, err := w.Write(buf.Bytes()); err != nil {
		applog.Error(r.Context(), "failed to send menu export", "error", err)
	}
}

// importMenuCSV accepts either a multipart "file" field or a raw CSV body.
func importMenuCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var source io.Reader = io.LimitReader(r.Body, maxUploadBytes)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		file, _, err := r.FormFile("file")
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "upload a CSV file")
			return
		}
		defer file.Close()
		source = file
	}

	dishes, err := ingest.DishesFromCSV(source)
	if err != nil {
		applog.Debug(ctx, "menu csv rejected", "error", err)
		if errors.Is(err, ingest.ErrNoHeader) {
			writeJSONError(w, http.StatusBadRequest, "the CSV file has no header row")
			return
		}
		writeJSONError(w, http.StatusBadRequest, "the CSV file could not be read")
		return
	}

	if err := kitchen.Import(ctx, ingest.Batch{Dishes: dishes}); err != nil {
		writeWorkspaceError(w, r, err, "import menu")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"imported": len(dishes)})
}

// extractMenu reads an uploaded menu or recipe document, prices the
// ingredients the kitchen has never bought and imports the result.
func extractMenu(w http.ResponseWriter, r *http.Request) {
	if !assistantReady(w, r) {
		return
	}
	ctx := r.Context()

	doc, err := readUpload(w, r)
	if err != nil {
		applog.Debug(ctx, "invalid menu upload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "upload a readable menu or recipe document")
		return
	}

	extraction, err := assistant.ExtractMenu(ctx, doc)
	if err != nil {
		applog.Error(ctx, "menu extraction failed", "error", err, "file", doc.FileName)
		writeJSONError(w, http.StatusBadGateway, "could not read the menu")
		return
	}

	existing := kitchen.Snapshot().Ingredients
	prices, err := assistant.SuggestPrices(ctx, ingest.UnpricedNames(existing, extraction))
	if err != nil {
		// New ingredients still import, at a zero price.
		applog.Warn(ctx, "price suggestions unavailable", "error", err)
	}

	batch := ingest.Menu(existing, extraction, prices)
	if err := kitchen.Import(ctx, batch); err != nil {
		writeWorkspaceError(w, r, err, "import menu")
		return
	}
	applog.Info(ctx, "menu extracted", "file", doc.FileName,
		"dishes", len(batch.Dishes), "subRecipes", len(batch.SubRecipes), "ingredients", len(batch.NewIngredients))
	writeJSON(w, http.StatusCreated, batch)
}
