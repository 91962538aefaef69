package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	respond "github.com/daylio-dash/daylio-dash/internal/api/respond"
	"github.com/daylio-dash/daylio-dash/internal/core/journal"
	"github.com/daylio-dash/daylio-dash/internal/model"
)

const maxCreateBodyBytes = 1 << 20

// JournalHandler is the HTTP transport over journal.Service.
type JournalHandler struct {
	svc            *journal.Service
	maxImportBytes int64
	now            func() time.Time
}

func NewJournalHandler(svc *journal.Service, maxImportBytes int64) *JournalHandler {
	return &JournalHandler{svc: svc, maxImportBytes: maxImportBytes, now: time.Now}
}

// writeServiceError maps domain errors onto status codes. Validation and
// import failures are the caller's fault; everything else is a 500 carrying
// the underlying message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve journal.ValidationError
	switch {
	case errors.As(err, &ve):
		respond.WriteBadRequest(w, ve.Message)
	case errors.Is(err, model.ErrImport):
		respond.WriteBadRequest(w, err.Error())
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		respond.WriteInternalError(w, err.Error())
	}
}

// GetVital GET /vital
func (h *JournalHandler) GetVital(w http.ResponseWriter, r *http.Request) {
	v, err := h.svc.Vital(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, v)
}

// GetEntries GET /entries
func (h *JournalHandler) GetEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.Entries(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, entries)
}

// GetStructuredData GET /structured_data
func (h *JournalHandler) GetStructuredData(w http.ResponseWriter, r *http.Request) {
	agg, err := h.svc.Structured(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, agg)
}

// GetMetadata GET /metadata
func (h *JournalHandler) GetMetadata(w http.ResponseWriter, r *http.Request) {
	md, err := h.svc.Metadata(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, md)
}

// CreateEntry POST /api/entries
func (h *JournalHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req journal.CreateEntryRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCreateBodyBytes)).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	entry, err := h.svc.CreateEntry(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if entry.Tags == nil {
		entry.Tags = []int64{}
	}
	respond.WriteJSON(w, http.StatusCreated, entry)
}

// ListEntries GET /api/entries
func (h *JournalHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.RawEntries(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, toEntryRecordResponses(records))
}

// ListMoods GET /api/moods
func (h *JournalHandler) ListMoods(w http.ResponseWriter, r *http.Request) {
	moods, err := h.svc.Moods(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, toMoodResponses(moods))
}

// ListTags GET /api/tags
func (h *JournalHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	cat, err := h.svc.TagCatalog(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, toTagCatalogResponse(cat))
}

// GetSummary GET /api/summary
func (h *JournalHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Summary(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, toSummaryResponse(sum))
}

// ImportBackup POST /api/import. The backup is either the raw request body or
// the "file" part of a multipart form.
func (h *JournalHandler) ImportBackup(w http.ResponseWriter, r *http.Request) {
	raw, err := h.readBackup(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.WriteError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("backup exceeds %d bytes", tooLarge.Limit))
			return
		}
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		respond.WriteBadRequest(w, "backup file is empty")
		return
	}
	counts, err := h.svc.Import(r.Context(), raw)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	zerolog.Ctx(r.Context()).Info().
		Int("entries", counts.Entries).
		Int("moods", counts.Moods).
		Int("tags", counts.Tags).
		Int("tag_groups", counts.TagGroups).
		Msg("backup imported")
	respond.WriteJSON(w, http.StatusOK, importResponse{Imported: counts})
}

func (h *JournalHandler) readBackup(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body := http.MaxBytesReader(w, r.Body, h.maxImportBytes)
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return io.ReadAll(body)
	}
	r.Body = body
	if err := r.ParseMultipartForm(h.maxImportBytes); err != nil {
		return nil, err
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("multipart form has no file part: %w", err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

// ExportBackup GET /api/export
func (h *JournalHandler) ExportBackup(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Export(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	name := fmt.Sprintf("daylio_export_%s.daylio", h.now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}
