// Package export renders a configuration as a downloadable document.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/tphummel/nts_configurator/internal/catalog"
	"github.com/tphummel/nts_configurator/internal/models"
	"github.com/tphummel/nts_configurator/internal/wizard"
)

// Format is a download format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
)

// ValidFormats is the set of supported export formats.
var ValidFormats = map[Format]bool{
	FormatJSON: true,
	FormatYAML: true,
	FormatXLSX: true,
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}

// Decision repeats the wizard answers at the top of the document.
type Decision struct {
	DevBand  models.DevBand  `json:"dev_band" yaml:"dev_band"`
	Accuracy models.Accuracy `json:"accuracy" yaml:"accuracy"`
}

// Document is the exported form of a configuration.
type Document struct {
	Decision             Decision `json:"decision" yaml:"decision"`
	models.Configuration `yaml:",inline"`
}

// NewDocument wraps cfg with its band and accuracy decision.
func NewDocument(cfg models.Configuration) Document {
	return Document{
		Decision:      Decision{DevBand: cfg.DevBand, Accuracy: cfg.Accuracy},
		Configuration: cfg,
	}
}

// Filename is the download name for cfg in format f.
func Filename(cfg models.Configuration, f Format) string {
	return fmt.Sprintf("%s-configuration.%s", cfg.Model, f)
}

// Render writes cfg in format f. lang selects the language of the
// spreadsheet labels; JSON and YAML carry ids only.
func Render(cfg models.Configuration, f Format, lang models.Lang) ([]byte, error) {
	doc := NewDocument(cfg)
	switch f {
	case FormatJSON:
		b, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal json: %w", err)
		}
		return append(b, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("marshal yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("marshal yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatXLSX:
		return renderXLSX(cfg, lang)
	default:
		return nil, fmt.Errorf("unsupported export format %q", f)
	}
}

const sheetName = "Configuration"

var xlsxLabels = map[string]catalog.Text{
	"model":     {CS: "Model", EN: "Model", PL: "Model"},
	"band":      {CS: "Počet zařízení", EN: "Devices", PL: "Liczba urządzeń"},
	"accuracy":  {CS: "Přesnost", EN: "Accuracy", PL: "Dokładność"},
	"hardware":  {CS: "Hardware", EN: "Hardware", PL: "Sprzęt"},
	"ptp":       {CS: "PTP profil", EN: "PTP profile", PL: "Profil PTP"},
	"accessory": {CS: "Doplněk", EN: "Accessory", PL: "Akcesorium"},
	"company":   {CS: "Společnost", EN: "Company", PL: "Firma"},
	"contact":   {CS: "Kontakt", EN: "Contact", PL: "Kontakt"},
	"notes":     {CS: "Poznámky", EN: "Notes", PL: "Notatki"},
}

func renderXLSX(cfg models.Configuration, lang models.Lang) ([]byte, error) {
	m, err := catalog.Lookup(cfg.Model)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	label := func(key string) string { return xlsxLabels[key].In(lang) }
	hw := fmt.Sprintf("%s • LAN %d • SFP %d • %s", cfg.Oscillator, cfg.LAN, cfg.SFP, cfg.Power)
	if cfg.RedundantGNSS {
		hw += " • GNSS redundant"
	}

	rows := [][2]string{
		{label("model"), m.Name + " — " + m.Tag.In(lang)},
		{label("band"), catalog.BandLabel(cfg.DevBand, lang)},
		{label("accuracy"), catalog.AccuracyLabel(cfg.Accuracy, lang)},
		{label("hardware"), hw},
		{label("ptp"), cfg.PTPProfile},
	}
	if m.PTPPorts != nil {
		rows = append(rows, [2]string{catalog.PTPPortsLabel.In(lang), fmt.Sprint(cfg.PTPPorts)})
	}
	for _, o := range wizard.Options(cfg, lang) {
		if o.Selected {
			rows = append(rows, [2]string{label("accessory"), o.Name})
		}
	}
	rows = append(rows,
		[2]string{label("company"), cfg.Company},
		[2]string{label("contact"), cfg.Contact},
		[2]string{label("notes"), cfg.Notes},
	)

	for i, row := range rows {
		if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", i+1), &[]any{row[0], row[1]}); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if err := f.SetColWidth(sheetName, "A", "A", 22); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetColWidth(sheetName, "B", "B", 60); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseFormat returns the format named by s, defaulting to JSON when s is empty.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatJSON, nil
	}
	f := Format(strings.ToLower(s))
	if !ValidFormats[f] {
		return "", fmt.Errorf("unsupported export format %q", s)
	}
	return f, nil
}
