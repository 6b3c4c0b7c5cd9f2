package wizard

import (
	"fmt"
	"strings"

	"github.com/tphummel/nts_configurator/internal/catalog"
	"github.com/tphummel/nts_configurator/internal/models"
)

// OptionKind tells the UI how to render an accessory.
type OptionKind string

const (
	// OptionCheck is a toggleable checkbox.
	OptionCheck OptionKind = "check"
	// OptionInfo is a permanently checked, read-only line.
	OptionInfo OptionKind = "info"
)

// Option is one line of the accessory step.
type Option struct {
	ID       models.AccessoryID `json:"id"`
	Kind     OptionKind         `json:"kind"`
	Name     string             `json:"name"`
	Help     string             `json:"help"`
	Selected bool               `json:"selected"`
}

// Options lists the accessories offered for cfg's model in catalog order.
// Unavailable accessories are left out; included ones appear as info lines.
func Options(cfg models.Configuration, lang models.Lang) []Option {
	var out []Option
	for _, a := range catalog.Accessories() {
		switch a.AvailabilityFor(cfg.Model) {
		case catalog.Optional:
			out = append(out, Option{
				ID:       a.ID,
				Kind:     OptionCheck,
				Name:     a.Name.In(lang),
				Help:     a.Help.In(lang),
				Selected: cfg.HasAccessory(a.ID),
			})
		case catalog.Included:
			out = append(out, Option{
				ID:       a.ID,
				Kind:     OptionInfo,
				Name:     a.IncludedName.In(lang),
				Help:     a.IncludedHelp.In(lang),
				Selected: true,
			})
		}
	}
	return out
}

// PTPPortChoices returns the selectable PTP port counts for cfg's model, or
// nil when the model has none.
func PTPPortChoices(cfg models.Configuration) []int {
	m, err := catalog.Lookup(cfg.Model)
	if err != nil || m.PTPPorts == nil {
		return nil
	}
	choices := make([]int, 0, m.PTPPorts.Max-m.PTPPorts.Min+1)
	for n := m.PTPPorts.Min; n <= m.PTPPorts.Max; n++ {
		choices = append(choices, n)
	}
	return choices
}

// Summary renders the configuration as the plain-text overview shown on the
// export step, one fact per line.
func Summary(cfg models.Configuration, lang models.Lang) string {
	m, err := catalog.Lookup(cfg.Model)
	if err != nil {
		return ""
	}

	hw := fmt.Sprintf("LAN %d • SFP %d • %s", cfg.LAN, cfg.SFP, cfg.Power)
	if cfg.RedundantGNSS {
		hw += " • GNSS redundant"
	}

	lines := []string{
		m.Name + " — " + m.Tag.In(lang),
		catalog.BandLabel(cfg.DevBand, lang),
		catalog.AccuracyLabel(cfg.Accuracy, lang),
		hw,
		"PTP: " + cfg.PTPProfile,
	}
	if m.PTPPorts != nil {
		lines = append(lines, fmt.Sprintf("%s: %d", catalog.PTPPortsLabel.In(lang), cfg.PTPPorts))
	}

	var names []string
	for _, o := range Options(cfg, lang) {
		if o.Selected {
			names = append(names, o.Name)
		}
	}
	if len(names) > 0 {
		lines = append(lines, strings.Join(names, ", "))
	}
	return strings.Join(lines, "\n")
}
