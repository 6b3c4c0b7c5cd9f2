package wizard

import (
	"errors"
	"fmt"

	"github.com/tphummel/nts_configurator/internal/catalog"
	"github.com/tphummel/nts_configurator/internal/models"
)

var (
	// ErrNotSelectable is returned when toggling an accessory that is
	// included with or unavailable on the configured model.
	ErrNotSelectable = errors.New("accessory is not selectable for this model")
	// ErrNoPTPPorts is returned when setting a PTP port count on a model
	// without a selectable port count.
	ErrNoPTPPorts = errors.New("model has no selectable PTP port count")
	// ErrPortsOutOfRange is returned for a PTP port count outside the
	// model's range.
	ErrPortsOutOfRange = errors.New("PTP port count out of range")
)

// Default returns the configuration a new wizard session starts with.
func Default() models.Configuration {
	cfg, err := Normalize(models.Configuration{
		DevBand:     models.BandMedium,
		Accuracy:    models.AccuracyPTPEnt,
		PTPProfile:  models.DefaultPTPProfile,
		Accessories: []models.AccessoryID{},
	})
	if err != nil {
		// Recommend only returns catalog ids.
		panic(err)
	}
	return cfg
}

// ApplyRecommendation makes cfg consistent with model id: the technical
// attributes are overwritten with the model defaults, accessories that are
// not selectable on the model are dropped and the PTP port count is clamped
// or cleared. Applying the same id twice gives the same result as once.
func ApplyRecommendation(cfg models.Configuration, id models.ModelID) (models.Configuration, error) {
	m, err := catalog.Lookup(id)
	if err != nil {
		return cfg, fmt.Errorf("apply recommendation: %w", err)
	}

	out := cfg
	out.Model = m.ID
	out.TechSpec = m.Defaults
	out.Accessories = selection(cfg.Accessories, m.ID, func(models.AccessoryID) bool { return true })

	switch catalog.AvailabilityOf(models.AccessoryDualPSU, m.ID) {
	case catalog.Included:
		out.Power = models.PowerRedundant
	case catalog.Optional:
		if out.HasAccessory(models.AccessoryDualPSU) {
			out.Power = models.PowerRedundant
		}
	}

	if m.PTPPorts != nil {
		out.PTPPorts = m.PTPPorts.Clamp(cfg.PTPPorts)
	} else {
		out.PTPPorts = 0
	}
	return out, nil
}

// SetBand records a new device band and re-derives the model.
func SetBand(cfg models.Configuration, band models.DevBand) (models.Configuration, error) {
	cfg.DevBand = band
	return ApplyRecommendation(cfg, Recommend(band, cfg.Accuracy))
}

// SetAccuracy records a new accuracy tier and re-derives the model.
func SetAccuracy(cfg models.Configuration, accuracy models.Accuracy) (models.Configuration, error) {
	cfg.Accuracy = accuracy
	return ApplyRecommendation(cfg, Recommend(cfg.DevBand, accuracy))
}

// ToggleAccessory adds (on) or removes an optional accessory. Turning the
// dual PSU on switches power to Redundant; turning it off restores the
// model's default power mode.
func ToggleAccessory(cfg models.Configuration, acc models.AccessoryID, on bool) (models.Configuration, error) {
	if _, err := catalog.LookupAccessory(acc); err != nil {
		return cfg, err
	}
	if !catalog.Eligible(acc, cfg.Model) {
		return cfg, fmt.Errorf("%s on %s: %w", acc, cfg.Model, ErrNotSelectable)
	}
	m, err := catalog.Lookup(cfg.Model)
	if err != nil {
		return cfg, err
	}

	current := append([]models.AccessoryID(nil), cfg.Accessories...)
	if on {
		current = append(current, acc)
	}
	out := cfg
	out.Accessories = selection(current, m.ID, func(a models.AccessoryID) bool {
		return on || a != acc
	})

	if acc == models.AccessoryDualPSU {
		if on {
			out.Power = models.PowerRedundant
		} else {
			out.Power = m.Defaults.Power
		}
	}
	return out, nil
}

// SetPTPPorts sets the PTP port count on models that offer one.
func SetPTPPorts(cfg models.Configuration, n int) (models.Configuration, error) {
	m, err := catalog.Lookup(cfg.Model)
	if err != nil {
		return cfg, err
	}
	if m.PTPPorts == nil {
		return cfg, fmt.Errorf("%s: %w", m.ID, ErrNoPTPPorts)
	}
	if !m.PTPPorts.Contains(n) {
		return cfg, fmt.Errorf("%d not in %d-%d: %w", n, m.PTPPorts.Min, m.PTPPorts.Max, ErrPortsOutOfRange)
	}
	cfg.PTPPorts = n
	return cfg, nil
}

// Reset starts a new configuration for the same band and accuracy: the
// accessory selection and the contact fields are cleared.
func Reset(cfg models.Configuration) (models.Configuration, error) {
	cfg.Accessories = []models.AccessoryID{}
	cfg.Company = ""
	cfg.Contact = ""
	cfg.Notes = ""
	return Normalize(cfg)
}

// Normalize re-derives the model from the band and accuracy answers. It is
// applied to configurations restored from a permalink, which may have been
// edited by hand.
func Normalize(cfg models.Configuration) (models.Configuration, error) {
	if cfg.PTPProfile == "" {
		cfg.PTPProfile = models.DefaultPTPProfile
	}
	return ApplyRecommendation(cfg, Recommend(cfg.DevBand, cfg.Accuracy))
}

// selection returns the accessories from ids that are selectable on model
// and accepted by keep, deduplicated and in catalog order.
func selection(ids []models.AccessoryID, model models.ModelID, keep func(models.AccessoryID) bool) []models.AccessoryID {
	chosen := make(map[models.AccessoryID]bool, len(ids))
	for _, id := range ids {
		chosen[id] = true
	}
	out := make([]models.AccessoryID, 0, len(chosen))
	for _, a := range catalog.Accessories() {
		if chosen[a.ID] && keep(a.ID) && catalog.Eligible(a.ID, model) {
			out = append(out, a.ID)
		}
	}
	return out
}
