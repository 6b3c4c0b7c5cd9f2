package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/tphummel/nts_configurator/internal/catalog"
	"github.com/tphummel/nts_configurator/internal/export"
	"github.com/tphummel/nts_configurator/internal/metrics"
	"github.com/tphummel/nts_configurator/internal/middleware"
	"github.com/tphummel/nts_configurator/internal/models"
	"github.com/tphummel/nts_configurator/internal/permalink"
	"github.com/tphummel/nts_configurator/internal/wizard"
)

const maxBodyBytes = 64 * 1024

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	// PublicURL is the wizard page address share links point at.
	PublicURL string
	Version   string
	Commit    string
}

// ModelCard is a catalog model with its text resolved to one language.
type ModelCard struct {
	ID        models.ModelID     `json:"id"`
	Name      string             `json:"name"`
	Image     string             `json:"image"`
	Datasheet string             `json:"datasheet,omitempty"`
	Tag       string             `json:"tag"`
	Desc      string             `json:"desc"`
	Note      string             `json:"note"`
	Defaults  models.TechSpec    `json:"defaults"`
	PTPPorts  *catalog.PortRange `json:"ptp_ports,omitempty"`
}

func newModelCard(m catalog.Model, lang models.Lang) ModelCard {
	return ModelCard{
		ID:        m.ID,
		Name:      m.Name,
		Image:     m.Image,
		Datasheet: m.Datasheet,
		Tag:       m.Tag.In(lang),
		Desc:      m.Desc.In(lang),
		Note:      m.Note.In(lang),
		Defaults:  m.Defaults,
		PTPPorts:  m.PTPPorts,
	}
}

// View is everything the wizard UI needs to render a configuration.
type View struct {
	Configuration  models.Configuration `json:"configuration"`
	Model          ModelCard            `json:"model"`
	Options        []wizard.Option      `json:"options"`
	PTPPortChoices []int                `json:"ptp_port_choices,omitempty"`
	Summary        string               `json:"summary"`
	Code           string               `json:"code"`
	Permalink      string               `json:"permalink"`
}

// ChangeRequest applies user actions to a configuration. Nil fields are left
// unchanged. Steps run in field order: reset, band, accuracy, accessories,
// PTP ports, then the contact fields.
type ChangeRequest struct {
	Code        string                      `json:"c"`
	Reset       bool                        `json:"reset"`
	DevBand     *models.DevBand             `json:"dev_band" validate:"omitempty,oneof=small medium large xl"`
	Accuracy    *models.Accuracy            `json:"accuracy" validate:"omitempty,oneof=ntp_ms ptp_ent ptp_prtc eprtc"`
	Accessories map[models.AccessoryID]bool `json:"accessories" validate:"omitempty,dive,keys,oneof=antenna irig fibre_optic dual_psu fw_5071a,endkeys"`
	PTPPorts    *int                        `json:"ptp_ports" validate:"omitempty,min=1,max=4"`
	Company     *string                     `json:"company" validate:"omitempty,max=200"`
	Contact     *string                     `json:"contact" validate:"omitempty,max=200"`
	Notes       *string                     `json:"notes" validate:"omitempty,max=2000"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// requestLang picks the display language from ?lang= or Accept-Language.
func requestLang(r *http.Request) models.Lang {
	return catalog.MatchLang(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
}

// restore decodes a permalink code into a consistent configuration. Codes
// that do not decode are counted and silently replaced by the default.
func restore(r *http.Request, code string) models.Configuration {
	if code == "" {
		return wizard.Default()
	}
	cfg, ok := permalink.Decode(code)
	if !ok {
		metrics.RecordDecodeFailure()
		slog.DebugContext(r.Context(), "permalink decode failed, using defaults",
			"request_id", middleware.RequestIDFrom(r.Context()))
		return wizard.Default()
	}
	cfg, err := wizard.Normalize(cfg)
	if err != nil {
		// Decode validates the model id, so this is a catalog defect.
		slog.ErrorContext(r.Context(), "normalize restored configuration", "error", err)
		return wizard.Default()
	}
	return cfg
}

func (h *Handler) view(r *http.Request, cfg models.Configuration, lang models.Lang) (View, error) {
	m, err := catalog.Lookup(cfg.Model)
	if err != nil {
		return View{}, err
	}
	v := View{
		Configuration:  cfg,
		Model:          newModelCard(m, lang),
		Options:        wizard.Options(cfg, lang),
		PTPPortChoices: wizard.PTPPortChoices(cfg),
		Summary:        wizard.Summary(cfg, lang),
		Code:           permalink.Encode(cfg),
	}
	v.Permalink, err = permalink.ShareURL(h.PublicURL, cfg)
	if err != nil {
		slog.ErrorContext(r.Context(), "build share url", "error", err, "public_url", h.PublicURL)
	}
	metrics.RecordRecommendation(string(cfg.Model))
	return v, nil
}

// Health handles GET /healthz. No auth required.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.Version,
		"commit":  h.Commit,
	})
}

// ListModels handles GET /api/v1/models with an optional ?lang= parameter.
func (h *Handler) ListModels(w http.ResponseWriter, r *http.Request) {
	lang := requestLang(r)
	all := catalog.Models()
	cards := make([]ModelCard, 0, len(all))
	for _, m := range all {
		cards = append(cards, newModelCard(m, lang))
	}
	writeJSON(w, http.StatusOK, cards)
}

// GetModel handles GET /api/v1/models/{id}.
func (h *Handler) GetModel(w http.ResponseWriter, r *http.Request) {
	m, err := catalog.Lookup(models.ModelID(r.PathValue("id")))
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "model not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get model")
		return
	}
	writeJSON(w, http.StatusOK, newModelCard(m, requestLang(r)))
}

// Recommend handles GET /api/v1/recommendation?band=&accuracy=.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	band := models.DevBand(r.URL.Query().Get("band"))
	accuracy := models.Accuracy(r.URL.Query().Get("accuracy"))
	if !models.ValidBands[band] {
		writeError(w, http.StatusBadRequest, "invalid band")
		return
	}
	if !models.ValidAccuracies[accuracy] {
		writeError(w, http.StatusBadRequest, "invalid accuracy")
		return
	}

	m, err := catalog.Lookup(wizard.Recommend(band, accuracy))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to recommend model")
		return
	}
	lang := requestLang(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"dev_band":       band,
		"accuracy":       accuracy,
		"band_label":     catalog.BandLabel(band, lang),
		"accuracy_label": catalog.AccuracyLabel(accuracy, lang),
		"accuracy_help":  catalog.AccuracyHelp(accuracy, lang),
		"model":          newModelCard(m, lang),
	})
}

// GetConfiguration handles GET /api/v1/configuration?c=. A missing or
// undecodable code yields the default configuration.
func (h *Handler) GetConfiguration(w http.ResponseWriter, r *http.Request) {
	cfg := restore(r, r.URL.Query().Get(permalink.Param))
	v, err := h.view(r, cfg, requestLang(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render configuration")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// UpdateConfiguration handles POST /api/v1/configuration.
func (h *Handler) UpdateConfiguration(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req ChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := models.Validate(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cfg, err := applyChanges(restore(r, req.Code), req)
	if err != nil {
		if errors.Is(err, wizard.ErrNotSelectable) || errors.Is(err, wizard.ErrPortsOutOfRange) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "apply configuration changes", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update configuration")
		return
	}

	v, err := h.view(r, cfg, requestLang(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render configuration")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func applyChanges(cfg models.Configuration, req ChangeRequest) (models.Configuration, error) {
	var err error
	if req.Reset {
		if cfg, err = wizard.Reset(cfg); err != nil {
			return cfg, err
		}
	}
	if req.DevBand != nil {
		if cfg, err = wizard.SetBand(cfg, *req.DevBand); err != nil {
			return cfg, err
		}
	}
	if req.Accuracy != nil {
		if cfg, err = wizard.SetAccuracy(cfg, *req.Accuracy); err != nil {
			return cfg, err
		}
	}
	for _, a := range catalog.Accessories() {
		on, ok := req.Accessories[a.ID]
		if !ok || (!on && !cfg.HasAccessory(a.ID)) {
			continue
		}
		if cfg, err = wizard.ToggleAccessory(cfg, a.ID, on); err != nil {
			return cfg, err
		}
	}
	if req.PTPPorts != nil {
		next, err := wizard.SetPTPPorts(cfg, *req.PTPPorts)
		switch {
		case errors.Is(err, wizard.ErrNoPTPPorts):
			// The port count only applies to models that offer one.
		case err != nil:
			return cfg, err
		default:
			cfg = next
		}
	}
	if req.Company != nil {
		cfg.Company = *req.Company
	}
	if req.Contact != nil {
		cfg.Contact = *req.Contact
	}
	if req.Notes != nil {
		cfg.Notes = *req.Notes
	}
	return cfg, nil
}

// Export handles GET /api/v1/export?c=&format=json|yaml|xlsx and serves the
// configuration as a file download.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cfg := restore(r, r.URL.Query().Get(permalink.Param))
	body, err := export.Render(cfg, format, requestLang(r))
	if err != nil {
		slog.ErrorContext(r.Context(), "render export", "error", err, "format", format)
		writeError(w, http.StatusInternalServerError, "failed to export configuration")
		return
	}
	metrics.RecordExport(string(format))

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": export.Filename(cfg, format),
	}))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		slog.ErrorContext(r.Context(), "write export", "error", err)
	}
}
