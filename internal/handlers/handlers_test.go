package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/tphummel/nts_configurator/internal/handlers"
	"github.com/tphummel/nts_configurator/internal/models"
	"github.com/tphummel/nts_configurator/internal/permalink"
	"github.com/tphummel/nts_configurator/internal/wizard"
)

const (
	apiToken  = "test-token"
	publicURL = "https://configurator.example.com/wizard"
)

// newTestMux builds the same mux as main.go.
// It returns both the mux and the handler it routes to.
func newTestMux(t *testing.T) (http.Handler, *handlers.Handler) {
	t.Helper()
	h := &handlers.Handler{PublicURL: publicURL, Version: "test", Commit: "abc123"}
	return handlers.NewMux(h, apiToken), h
}

// authReq builds a request with the test Bearer token already attached.
func authReq(method, path string, body []byte) *http.Request {
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	r.Header.Set("Authorization", "Bearer "+apiToken)
	return r
}

// serve is a small helper that runs a request through the mux and returns the recorder.
func serve(mux http.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	return w
}

// decodeBody unmarshals a recorder's body into v.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("decode response body: %v\nbody: %s", err, w.Body.String())
	}
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, nil))
}

// post sends a change request and decodes the resulting view.
func post(t *testing.T, mux http.Handler, body any) handlers.View {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	w := serve(mux, authReq(http.MethodPost, "/api/v1/configuration", b))
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200\nbody: %s", w.Code, w.Body.String())
	}
	var v handlers.View
	decodeBody(t, w, &v)
	return v
}

// --- Health ---

func TestHealth(t *testing.T) {
	mux, _ := newTestMux(t)
	w := serve(mux, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", w.Code)
	}
	var body map[string]string
	decodeBody(t, w, &body)
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want ok", body["status"])
	}
	if body["version"] != "test" || body["commit"] != "abc123" {
		t.Errorf("build info: got %v", body)
	}
}

func TestHealth_NoAuthRequired(t *testing.T) {
	mux, _ := newTestMux(t)
	// No Authorization header
	w := serve(mux, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Errorf("healthz without auth: got %d, want 200", w.Code)
	}
}

// --- Auth ---

func TestAPI_RequiresToken(t *testing.T) {
	mux, _ := newTestMux(t)
	for _, path := range []string{
		"/api/v1/models",
		"/api/v1/models/nts-3000",
		"/api/v1/recommendation?band=small&accuracy=ntp_ms",
		"/api/v1/configuration",
		"/api/v1/export",
	} {
		w := serve(mux, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token: got %d, want 401", path, w.Code)
		}
	}
}

func TestAPI_OpenWithoutToken(t *testing.T) {
	mux := handlers.NewMux(&handlers.Handler{PublicURL: publicURL}, "")
	w := serve(mux, httptest.NewRequest(http.MethodGet, "/api/v1/models", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status with auth disabled: got %d, want 200", w.Code)
	}
}

// --- Models ---

func TestListModels(t *testing.T) {
	mux, _ := newTestMux(t)
	w := serve(mux, authReq(http.MethodGet, "/api/v1/models?lang=en", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}

	var cards []handlers.ModelCard
	decodeBody(t, w, &cards)
	want := []models.ModelID{models.ModelPico3, models.Model3000, models.Model4000, models.Model5000}
	if len(cards) != len(want) {
		t.Fatalf("models: got %d, want %d", len(cards), len(want))
	}
	for i, id := range want {
		if cards[i].ID != id {
			t.Errorf("cards[%d]: got %q, want %q", i, cards[i].ID, id)
		}
	}
	if !strings.Contains(cards[1].Desc, "hundreds of clients") {
		t.Errorf("English description expected, got %q", cards[1].Desc)
	}
	if cards[3].PTPPorts == nil || cards[3].PTPPorts.Max != 4 {
		t.Errorf("nts-5000 ptp_ports: got %+v", cards[3].PTPPorts)
	}
	if cards[2].PTPPorts != nil {
		t.Errorf("nts-4000 should not offer PTP ports, got %+v", cards[2].PTPPorts)
	}
}

func TestGetModel_AcceptLanguage(t *testing.T) {
	mux, _ := newTestMux(t)
	r := authReq(http.MethodGet, "/api/v1/models/nts-5000", nil)
	r.Header.Set("Accept-Language", "pl-PL,pl;q=0.9,en;q=0.5")
	w := serve(mux, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}

	var card handlers.ModelCard
	decodeBody(t, w, &card)
	if card.Tag != "ePRTC / PRTC A/B | rubid" {
		t.Errorf("Polish tag: got %q", card.Tag)
	}
	if card.Defaults.Oscillator != models.OscillatorRubidium {
		t.Errorf("oscillator: got %q", card.Defaults.Oscillator)
	}
}

func TestGetModel_NotFound(t *testing.T) {
	mux, _ := newTestMux(t)
	w := serve(mux, authReq(http.MethodGet, "/api/v1/models/nts-9000", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", w.Code)
	}
	var body map[string]string
	decodeBody(t, w, &body)
	if body["error"] == "" {
		t.Error("expected error message in body")
	}
}

// --- Recommendation ---

func TestRecommend(t *testing.T) {
	tests := []struct {
		band     string
		accuracy string
		want     models.ModelID
	}{
		{"small", "ntp_ms", models.ModelPico3},
		{"medium", "ptp_ent", models.Model3000},
		{"large", "ptp_ent", models.Model4000},
		{"xl", "ptp_prtc", models.Model5000},
		{"small", "eprtc", models.Model5000},
	}

	mux, _ := newTestMux(t)
	for _, tt := range tests {
		t.Run(tt.band+"/"+tt.accuracy, func(t *testing.T) {
			q := url.Values{"band": {tt.band}, "accuracy": {tt.accuracy}}
			w := serve(mux, authReq(http.MethodGet, "/api/v1/recommendation?"+q.Encode(), nil))
			if w.Code != http.StatusOK {
				t.Fatalf("status: got %d, want 200", w.Code)
			}
			var body struct {
				DevBand  models.DevBand     `json:"dev_band"`
				Accuracy models.Accuracy    `json:"accuracy"`
				Model    handlers.ModelCard `json:"model"`
			}
			decodeBody(t, w, &body)
			if body.Model.ID != tt.want {
				t.Errorf("model: got %q, want %q", body.Model.ID, tt.want)
			}
			if string(body.DevBand) != tt.band || string(body.Accuracy) != tt.accuracy {
				t.Errorf("echo: got %q/%q", body.DevBand, body.Accuracy)
			}
		})
	}
}

func TestRecommend_InvalidInput(t *testing.T) {
	mux, _ := newTestMux(t)
	for _, q := range []string{
		"",
		"band=small",
		"accuracy=ntp_ms",
		"band=huge&accuracy=ntp_ms",
		"band=small&accuracy=sundial",
	} {
		w := serve(mux, authReq(http.MethodGet, "/api/v1/recommendation?"+q, nil))
		if w.Code != http.StatusBadRequest {
			t.Errorf("%q: got %d, want 400", q, w.Code)
		}
	}
}

// --- Configuration ---

func TestGetConfiguration_Default(t *testing.T) {
	mux, _ := newTestMux(t)
	w := serve(mux, authReq(http.MethodGet, "/api/v1/configuration?lang=en", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}

	var v handlers.View
	decodeBody(t, w, &v)
	cfg := v.Configuration
	if cfg.Model != models.Model3000 || cfg.DevBand != models.BandMedium || cfg.Accuracy != models.AccuracyPTPEnt {
		t.Errorf("default: got %s/%s/%s", cfg.Model, cfg.DevBand, cfg.Accuracy)
	}
	if cfg.Accessories == nil || len(cfg.Accessories) != 0 {
		t.Errorf("accessories: got %#v, want empty list", cfg.Accessories)
	}
	if v.Model.ID != models.Model3000 {
		t.Errorf("model card: got %q", v.Model.ID)
	}
	if len(v.PTPPortChoices) != 0 {
		t.Errorf("ptp port choices on nts-3000: got %v", v.PTPPortChoices)
	}
	if !strings.HasPrefix(v.Summary, "NTS-3000") {
		t.Errorf("summary: got %q", v.Summary)
	}

	for _, o := range v.Options {
		if o.ID == models.AccessoryDualPSU && o.Kind != wizard.OptionCheck {
			t.Errorf("dual PSU on nts-3000 should be a checkbox, got %q", o.Kind)
		}
	}

	u, err := url.Parse(v.Permalink)
	if err != nil {
		t.Fatalf("permalink: %v", err)
	}
	if !strings.HasPrefix(v.Permalink, publicURL+"?") {
		t.Errorf("permalink base: got %q", v.Permalink)
	}
	if got := u.Query().Get(permalink.Param); got != v.Code {
		t.Errorf("permalink code: got %q, want %q", got, v.Code)
	}
}

func TestGetConfiguration_FromCode(t *testing.T) {
	mux, _ := newTestMux(t)

	cfg, err := wizard.SetAccuracy(wizard.Default(), models.AccuracyEPRTC)
	if err != nil {
		t.Fatalf("SetAccuracy: %v", err)
	}
	cfg.Company = "Zakłady Azotowe"
	code := permalink.Encode(cfg)

	w := serve(mux, authReq(http.MethodGet, "/api/v1/configuration?c="+code, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	var v handlers.View
	decodeBody(t, w, &v)
	if v.Configuration.Model != models.Model5000 {
		t.Errorf("model: got %q, want nts-5000", v.Configuration.Model)
	}
	if v.Configuration.Company != "Zakłady Azotowe" {
		t.Errorf("company: got %q", v.Configuration.Company)
	}
	if len(v.PTPPortChoices) != 4 {
		t.Errorf("ptp port choices: got %v, want 1..4", v.PTPPortChoices)
	}
	if v.Code != code {
		t.Errorf("code should round-trip unchanged: got %q, want %q", v.Code, code)
	}
}

func TestGetConfiguration_GarbageCodeFallsBack(t *testing.T) {
	mux, _ := newTestMux(t)
	for _, code := range []string{"not-valid-base64!!", "e30", "bm90IGpzb24"} {
		w := serve(mux, authReq(http.MethodGet, "/api/v1/configuration?c="+url.QueryEscape(code), nil))
		if w.Code != http.StatusOK {
			t.Errorf("c=%q: got %d, want 200", code, w.Code)
			continue
		}
		var v handlers.View
		decodeBody(t, w, &v)
		if v.Configuration.Model != models.Model3000 {
			t.Errorf("c=%q: got model %q, want default nts-3000", code, v.Configuration.Model)
		}
	}
}

func TestGetConfiguration_RepairsInconsistentCode(t *testing.T) {
	mux, _ := newTestMux(t)

	// A hand-edited code claiming the entry model for an ePRTC install.
	code := permalink.Encode(models.Configuration{
		Model:    models.ModelPico3,
		DevBand:  models.BandSmall,
		Accuracy: models.AccuracyEPRTC,
		TechSpec: models.TechSpec{
			Oscillator: models.OscillatorTCXO,
			LAN:        1,
			Power:      models.PowerSingle,
		},
		Accessories: []models.AccessoryID{models.AccessoryDualPSU},
	})
	w := serve(mux, authReq(http.MethodGet, "/api/v1/configuration?c="+code, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	var v handlers.View
	decodeBody(t, w, &v)
	cfg := v.Configuration
	if cfg.Model != models.Model5000 || cfg.Oscillator != models.OscillatorRubidium {
		t.Errorf("got %s/%s, want nts-5000/Rb", cfg.Model, cfg.Oscillator)
	}
	if cfg.HasAccessory(models.AccessoryDualPSU) {
		t.Error("included dual PSU must not stay in the selection")
	}
	if cfg.PTPPorts != 1 {
		t.Errorf("ptp ports: got %d, want 1", cfg.PTPPorts)
	}
}

func TestUpdateConfiguration_XLTelecom(t *testing.T) {
	mux, _ := newTestMux(t)
	v := post(t, mux, map[string]any{"dev_band": "xl", "accuracy": "ptp_prtc"})

	cfg := v.Configuration
	if cfg.Model != models.Model5000 {
		t.Fatalf("model: got %q, want nts-5000", cfg.Model)
	}
	if cfg.Power != models.PowerRedundant || !cfg.RedundantGNSS {
		t.Errorf("power %q gnss %v", cfg.Power, cfg.RedundantGNSS)
	}
	if cfg.PTPPorts != 1 {
		t.Errorf("ptp ports: got %d, want 1", cfg.PTPPorts)
	}

	v = post(t, mux, map[string]any{"c": v.Code, "ptp_ports": 3})
	if v.Configuration.PTPPorts != 3 {
		t.Errorf("ptp ports after change: got %d, want 3", v.Configuration.PTPPorts)
	}
}

func TestUpdateConfiguration_SmallNTP(t *testing.T) {
	mux, _ := newTestMux(t)
	v := post(t, mux, map[string]any{
		"dev_band":    "small",
		"accuracy":    "ntp_ms",
		"accessories": map[string]bool{"antenna": true},
	})

	cfg := v.Configuration
	if cfg.Model != models.ModelPico3 || cfg.Oscillator != models.OscillatorTCXO {
		t.Errorf("got %s/%s, want nts-pico3/TCXO", cfg.Model, cfg.Oscillator)
	}
	if len(cfg.Accessories) != 1 || cfg.Accessories[0] != models.AccessoryAntenna {
		t.Errorf("accessories: got %v", cfg.Accessories)
	}
	for _, o := range v.Options {
		if o.ID == models.AccessoryDualPSU {
			t.Error("dual PSU must not be offered on nts-pico3")
		}
	}
}

func TestUpdateConfiguration_OptionalPSUBecomesIncluded(t *testing.T) {
	mux, _ := newTestMux(t)

	v := post(t, mux, map[string]any{"accessories": map[string]bool{"dual_psu": true}})
	if v.Configuration.Power != models.PowerRedundant {
		t.Fatalf("power after selecting dual PSU: got %q", v.Configuration.Power)
	}

	v = post(t, mux, map[string]any{"c": v.Code, "dev_band": "large"})
	cfg := v.Configuration
	if cfg.Model != models.Model4000 {
		t.Fatalf("model: got %q, want nts-4000", cfg.Model)
	}
	if cfg.HasAccessory(models.AccessoryDualPSU) {
		t.Error("dual PSU should drop out of the selection once included")
	}
	if cfg.Power != models.PowerRedundant {
		t.Errorf("power: got %q, want Redundant", cfg.Power)
	}
	found := false
	for _, o := range v.Options {
		if o.ID == models.AccessoryDualPSU {
			found = true
			if o.Kind != wizard.OptionInfo || !o.Selected {
				t.Errorf("included dual PSU option: got %+v", o)
			}
		}
	}
	if !found {
		t.Error("included dual PSU should be listed as an info option")
	}
}

func TestUpdateConfiguration_ContactAndReset(t *testing.T) {
	mux, _ := newTestMux(t)

	v := post(t, mux, map[string]any{
		"accessories": map[string]bool{"irig": true},
		"company":     "Elproma",
		"contact":     "sales@example.com",
		"notes":       "dwa zasilacze",
	})
	if v.Configuration.Company != "Elproma" || v.Configuration.Notes != "dwa zasilacze" {
		t.Fatalf("contact fields: got %+v", v.Configuration)
	}

	// Deselecting an accessory that is not selected is a no-op.
	v = post(t, mux, map[string]any{"c": v.Code, "accessories": map[string]bool{"antenna": false}})
	if len(v.Configuration.Accessories) != 1 {
		t.Errorf("accessories: got %v", v.Configuration.Accessories)
	}

	v = post(t, mux, map[string]any{"c": v.Code, "reset": true})
	cfg := v.Configuration
	if len(cfg.Accessories) != 0 || cfg.Company != "" || cfg.Contact != "" || cfg.Notes != "" {
		t.Errorf("reset left state behind: %+v", cfg)
	}
}

func TestUpdateConfiguration_PTPPortsIgnoredWithoutRange(t *testing.T) {
	mux, _ := newTestMux(t)
	v := post(t, mux, map[string]any{"ptp_ports": 2})
	if v.Configuration.PTPPorts != 0 {
		t.Errorf("nts-3000 ptp ports: got %d, want 0", v.Configuration.PTPPorts)
	}
}

func TestUpdateConfiguration_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid JSON", `{not json`},
		{"unknown band", `{"dev_band":"huge"}`},
		{"unknown accuracy", `{"accuracy":"sundial"}`},
		{"unknown accessory", `{"accessories":{"flux_capacitor":true}}`},
		{"ports out of range", `{"ptp_ports":9}`},
		{"company too long", `{"company":"` + strings.Repeat("x", 201) + `"}`},
		{"dual PSU on pico", `{"dev_band":"small","accuracy":"ntp_ms","accessories":{"dual_psu":true}}`},
		{"dual PSU when included", `{"dev_band":"large","accessories":{"dual_psu":true}}`},
	}

	mux, _ := newTestMux(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(mux, authReq(http.MethodPost, "/api/v1/configuration", []byte(tt.body)))
			if w.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400\nbody: %s", w.Code, w.Body.String())
			}
			var body map[string]string
			decodeBody(t, w, &body)
			if body["error"] == "" {
				t.Error("expected error message in body")
			}
		})
	}
}

func TestUpdateConfiguration_BodyTooLarge(t *testing.T) {
	mux, _ := newTestMux(t)
	body := []byte(`{"notes":"` + strings.Repeat("x", 70*1024) + `"}`)
	w := serve(mux, authReq(http.MethodPost, "/api/v1/configuration", body))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status: got %d, want 413", w.Code)
	}
}

// --- Export ---

func exportCode(t *testing.T) string {
	t.Helper()
	cfg, err := wizard.SetBand(wizard.Default(), models.BandXL)
	if err != nil {
		t.Fatalf("SetBand: %v", err)
	}
	cfg, err = wizard.SetAccuracy(cfg, models.AccuracyEPRTC)
	if err != nil {
		t.Fatalf("SetAccuracy: %v", err)
	}
	cfg.Contact = "Jan Nowák"
	return permalink.Encode(cfg)
}

func TestExport_JSON(t *testing.T) {
	mux, _ := newTestMux(t)
	w := serve(mux, authReq(http.MethodGet, "/api/v1/export?c="+exportCode(t), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q", ct)
	}
	_, params, err := mime.ParseMediaType(w.Header().Get("Content-Disposition"))
	if err != nil {
		t.Fatalf("Content-Disposition: %v", err)
	}
	if params["filename"] != "nts-5000-configuration.json" {
		t.Errorf("filename: got %q", params["filename"])
	}

	var doc map[string]any
	decodeBody(t, w, &doc)
	if doc["model"] != "nts-5000" || doc["contact"] != "Jan Nowák" {
		t.Errorf("document: got %v", doc)
	}
	if d, ok := doc["decision"].(map[string]any); !ok || d["accuracy"] != "eprtc" {
		t.Errorf("decision: got %v", doc["decision"])
	}
}

func TestExport_YAML(t *testing.T) {
	mux, _ := newTestMux(t)
	w := serve(mux, authReq(http.MethodGet, "/api/v1/export?format=yaml&c="+exportCode(t), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/yaml" {
		t.Errorf("Content-Type: got %q", ct)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if doc["oscillator"] != "Rb" {
		t.Errorf("oscillator: got %v", doc["oscillator"])
	}
}

func TestExport_XLSX(t *testing.T) {
	mux, _ := newTestMux(t)
	w := serve(mux, authReq(http.MethodGet, "/api/v1/export?format=xlsx&lang=en&c="+exportCode(t), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "nts-5000-configuration.xlsx") {
		t.Errorf("Content-Disposition: got %q", cd)
	}

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()
	v, err := f.GetCellValue("Configuration", "A1")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if v != "Model" {
		t.Errorf("A1: got %q, want Model", v)
	}
}

func TestExport_DefaultWithoutCode(t *testing.T) {
	mux, _ := newTestMux(t)
	w := serve(mux, authReq(http.MethodGet, "/api/v1/export", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "nts-3000-configuration.json") {
		t.Errorf("Content-Disposition: got %q", cd)
	}
}

func TestExport_UnsupportedFormat(t *testing.T) {
	mux, _ := newTestMux(t)
	w := serve(mux, authReq(http.MethodGet, "/api/v1/export?format=pdf", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", w.Code)
	}
}

// --- Request IDs ---

func TestWrap_SetsRequestID(t *testing.T) {
	mux, _ := newTestMux(t)
	var logs bytes.Buffer
	handler := handlers.Wrap(newLogger(&logs), mux)

	w := serve(handler, authReq(http.MethodGet, "/api/v1/models", nil))
	id := w.Header().Get("X-Request-ID")
	if id == "" {
		t.Fatal("expected X-Request-ID header")
	}
	if !strings.Contains(logs.String(), id) {
		t.Errorf("request log should carry the request id %q:\n%s", id, logs.String())
	}
}

func TestWrap_SkipsHealthz(t *testing.T) {
	mux, _ := newTestMux(t)
	var logs bytes.Buffer
	handler := handlers.Wrap(newLogger(&logs), mux)

	serve(handler, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if logs.Len() != 0 {
		t.Errorf("healthz should not be logged, got:\n%s", logs.String())
	}
}
