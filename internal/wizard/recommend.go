// Package wizard implements the configurator's decision engine: it maps the
// device band and accuracy answers to a model and keeps a Configuration
// consistent with that model.
//
// Every function takes a Configuration by value and returns a new one; the
// input is never modified.
package wizard

import "github.com/tphummel/nts_configurator/internal/models"

// Recommend returns the model for a device band and accuracy tier.
//
// Accuracy is decided first; the band only chooses between models that
// meet the accuracy. Unknown values fall through to the NTP rules.
func Recommend(band models.DevBand, accuracy models.Accuracy) models.ModelID {
	switch accuracy {
	case models.AccuracyEPRTC:
		return models.Model5000
	case models.AccuracyPTPPRTC:
		if band == models.BandXL {
			return models.Model5000
		}
		return models.Model4000
	case models.AccuracyPTPEnt:
		if band == models.BandLarge || band == models.BandXL {
			return models.Model4000
		}
		return models.Model3000
	}

	switch band {
	case models.BandSmall:
		return models.ModelPico3
	case models.BandMedium:
		return models.Model3000
	default:
		return models.Model4000
	}
}
