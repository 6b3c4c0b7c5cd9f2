package catalog

import (
	"golang.org/x/text/language"

	"github.com/tphummel/nts_configurator/internal/models"
)

// Text is a display string in every supported language.
type Text struct {
	CS string `json:"cs"`
	EN string `json:"en"`
	PL string `json:"pl"`
}

// In returns the text for lang, falling back to Czech.
func (t Text) In(lang models.Lang) string {
	switch lang {
	case models.LangEN:
		return t.EN
	case models.LangPL:
		return t.PL
	default:
		return t.CS
	}
}

var bandLabels = map[models.DevBand]Text{
	models.BandSmall:  {CS: "do ~50 zařízení", EN: "up to ~50 devices", PL: "do ~50 urządzeń"},
	models.BandMedium: {CS: "~50–200 zařízení", EN: "~50–200 devices", PL: "~50–200 urządzeń"},
	models.BandLarge:  {CS: "~200–1000 zařízení", EN: "~200–1000 devices", PL: "~200–1000 urządzeń"},
	models.BandXL:     {CS: ">1000 zařízení", EN: ">1000 devices", PL: ">1000 urządzeń"},
}

var accuracyLabels = map[models.Accuracy]Text{
	models.AccuracyNTP: {
		CS: "NTP – milisekundy",
		EN: "NTP – milliseconds",
		PL: "NTP – milisekundy",
	},
	models.AccuracyPTPEnt: {
		CS: "PTP Enterprise – sub-ms až desítky µs",
		EN: "PTP Enterprise – sub-ms to tens of µs",
		PL: "PTP Enterprise – poniżej ms do kilkudziesięciu µs",
	},
	models.AccuracyPTPPRTC: {
		CS: "PTP Telecom/PRTC-A – sub-µs",
		EN: "PTP Telecom/PRTC-A – sub-µs",
		PL: "PTP Telecom/PRTC-A – poniżej µs",
	},
	models.AccuracyEPRTC: {
		CS: "ePRTC / dlouhý holdover",
		EN: "ePRTC / long holdover",
		PL: "ePRTC / długi holdover",
	},
}

var accuracyHelp = map[models.Accuracy]Text{
	models.AccuracyNTP: {
		CS: "běžná IT síť, logy, servery, CCTV",
		EN: "typical IT network, logs, servers, CCTV",
		PL: "typowa sieć IT, logi, serwery, CCTV",
	},
	models.AccuracyPTPEnt: {
		CS: "datacentra, průmysl, trading edge",
		EN: "data centers, industry, trading edge",
		PL: "centra danych, przemysł, trading edge",
	},
	models.AccuracyPTPPRTC: {
		CS: "telekom/utility, synchronizace sítí",
		EN: "telecom/utility, network synchronization",
		PL: "telekom/utility, synchronizacja sieci",
	},
	models.AccuracyEPRTC: {
		CS: "kritická infrastruktura, rubidium",
		EN: "critical infrastructure, rubidium",
		PL: "krytyczna infrastruktura, rubid",
	},
}

// PTPPortsLabel names the PTP port count choice.
var PTPPortsLabel = Text{
	CS: "Počet PTP portů (NTS-5000)",
	EN: "Number of PTP ports (NTS-5000)",
	PL: "Liczba portów PTP (NTS-5000)",
}

// BandLabel returns the display label of a device band.
func BandLabel(b models.DevBand, lang models.Lang) string {
	return bandLabels[b].In(lang)
}

// AccuracyLabel returns the display label of an accuracy tier.
func AccuracyLabel(a models.Accuracy, lang models.Lang) string {
	return accuracyLabels[a].In(lang)
}

// AccuracyHelp returns the short usage hint for an accuracy tier.
func AccuracyHelp(a models.Accuracy, lang models.Lang) string {
	return accuracyHelp[a].In(lang)
}

// Order matters: the first tag is the fallback.
var langMatcher = language.NewMatcher([]language.Tag{
	language.Czech,
	language.English,
	language.Polish,
})

// MatchLang picks the supported language that best matches the given
// values, each either a bare tag ("pl") or an Accept-Language header.
// Czech is returned when nothing matches.
func MatchLang(values ...string) models.Lang {
	for _, v := range values {
		if v == "" {
			continue
		}
		if models.ValidLangs[models.Lang(v)] {
			return models.Lang(v)
		}
		_, idx, conf := matcherMatch(v)
		if conf == language.No {
			continue
		}
		switch idx {
		case 1:
			return models.LangEN
		case 2:
			return models.LangPL
		default:
			return models.LangCS
		}
	}
	return models.LangCS
}

func matcherMatch(v string) (language.Tag, int, language.Confidence) {
	tags, _, err := language.ParseAcceptLanguage(v)
	if err != nil || len(tags) == 0 {
		return language.Und, 0, language.No
	}
	return langMatcher.Match(tags...)
}
