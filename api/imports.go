package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/garnizeh/trainhub/internal/importer"
	"github.com/garnizeh/trainhub/pkg/models"
	"github.com/garnizeh/trainhub/pkg/repository"
	"github.com/qri-io/jsonschema"
)

// ImportsHandler manages versioned catalog-import schemas and runs validated
// bulk imports against them.
type ImportsHandler struct {
	importer   *importer.Importer
	loader     *importer.Loader
	schemaRepo repository.SchemaRepo
}

func NewImportsHandler(imp *importer.Importer, loader *importer.Loader, sr repository.SchemaRepo) *ImportsHandler {
	return &ImportsHandler{importer: imp, loader: loader, schemaRepo: sr}
}

// Import validates the request body against the schema version given in the
// query (default "v1") and creates the catalog entities it describes.
func (h *ImportsHandler) Import(w http.ResponseWriter, r *http.Request) {
	version := r.URL.Query().Get("schema_version")
	if version == "" {
		version = "v1"
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "read request body")
		return
	}

	result, err := h.importer.Import(r.Context(), version, raw)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusCreated, result)
}

type schemaPayload struct {
	Version     string          `json:"version"`
	Description string          `json:"description"`
	SchemaJSON  json.RawMessage `json:"schema_json"`
}

// CreateOrUpdateSchema validates and stores an import schema, then reloads
// the compiled cache.
func (h *ImportsHandler) CreateOrUpdateSchema(w http.ResponseWriter, r *http.Request) {
	var p schemaPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid json")
		return
	}

	if p.Version == "" {
		writeFailure(w, http.StatusBadRequest, "version required")
		return
	}

	// basic compile check using qri-io/jsonschema
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(p.SchemaJSON, rs); err != nil {
		writeFailure(w, http.StatusBadRequest, fmt.Sprintf("invalid schema json: %v", err))
		return
	}

	ctx := r.Context()

	if _, err := h.schemaRepo.CreateSchema(ctx, p.Version, p.Description, string(p.SchemaJSON)); err != nil {
		writeError(w, err)
		return
	}

	if err := h.loader.Reload(ctx); err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusCreated, map[string]string{"version": p.Version})
}

func (h *ImportsHandler) ListSchemas(w http.ResponseWriter, r *http.Request) {
	rows, err := h.schemaRepo.ListSchemas(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if rows == nil {
		rows = []models.ImportSchema{}
	}

	writeData(w, http.StatusOK, rows)
}
