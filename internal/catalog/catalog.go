// Package catalog holds the compiled-in list of NTS time-server models and
// the accessories that can be ordered with them.
package catalog

import (
	"errors"
	"fmt"

	"github.com/tphummel/nts_configurator/internal/models"
)

// ErrNotFound is returned when a model or accessory id is not in the catalog.
var ErrNotFound = errors.New("not found")

// PortRange is an inclusive range of selectable PTP port counts.
type PortRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Clamp returns n limited to the range. Zero maps to Min.
func (r PortRange) Clamp(n int) int {
	if n < r.Min {
		return r.Min
	}
	if n > r.Max {
		return r.Max
	}
	return n
}

// Contains reports whether n lies within the range.
func (r PortRange) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

// Model is a catalog entry.
type Model struct {
	ID        models.ModelID  `json:"id"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Datasheet string          `json:"datasheet,omitempty"`
	Tag       Text            `json:"tag"`
	Desc      Text            `json:"desc"`
	Note      Text            `json:"note"`
	Defaults  models.TechSpec `json:"defaults"`

	// PTPPorts is nil for models without a selectable PTP port count.
	PTPPorts *PortRange `json:"ptp_ports,omitempty"`
}

// Availability describes how an accessory relates to a model.
type Availability string

const (
	// Optional accessories can be toggled by the user.
	Optional Availability = "optional"
	// Included accessories ship with the model and cannot be deselected.
	Included Availability = "included"
	// Unavailable accessories are not offered for the model.
	Unavailable Availability = "unavailable"
)

// Accessory is an orderable add-on.
type Accessory struct {
	ID   models.AccessoryID `json:"id"`
	Name Text               `json:"name"`
	Help Text               `json:"help"`

	// IncludedName and IncludedHelp replace Name and Help for models on which
	// the accessory is Included.
	IncludedName Text `json:"-"`
	IncludedHelp Text `json:"-"`

	// Per overrides the default availability (Optional) for specific models.
	Per map[models.ModelID]Availability `json:"-"`
}

// AvailabilityFor returns the accessory's availability on model id.
func (a Accessory) AvailabilityFor(id models.ModelID) Availability {
	if v, ok := a.Per[id]; ok {
		return v
	}
	return Optional
}

var catalogModels = []Model{
	{
		ID:    models.ModelPico3,
		Name:  "NTS-PICO3",
		Image: "/img/nts-pico3.jpg",
		Tag: Text{
			CS: "Kompaktní | NTP/PTP (edge)",
			EN: "Compact | NTP/PTP (edge)",
			PL: "Kompaktowy | NTP/PTP (edge)",
		},
		Desc: Text{
			CS: "Pro malé sítě (desítky klientů), přesnost ms (NTP) / základní PTP.",
			EN: "For small networks (dozens of clients), ms accuracy (NTP) / basic PTP.",
			PL: "Dla małych sieci (dziesiątki klientów), dokładność ms (NTP) / podstawowy PTP.",
		},
		Note: Text{
			CS: "Základní přesnost a kapacita, ideální na okraj sítě.",
			EN: "Basic accuracy and capacity, ideal for network edge.",
			PL: "Podstawowa dokładność i pojemność, idealne na brzegu sieci.",
		},
		Defaults: models.TechSpec{
			Oscillator: models.OscillatorTCXO,
			LAN:        1,
			SFP:        0,
			Power:      models.PowerSingle,
		},
	},
	{
		ID:        models.Model3000,
		Name:      "NTS-3000",
		Image:     "/img/nts-3000.jpg",
		Datasheet: "https://www.elpromaelectronics.com/wp-content/uploads/woocommerce_uploads/2023/05/TimeSystems_NTS_3000_120525-tamqzn.pdf",
		Tag: Text{
			CS: "PTP Grandmaster | NTP Stratum-1",
			EN: "PTP Grandmaster | NTP Stratum-1",
			PL: "PTP Grandmaster | NTP Stratum-1",
		},
		Desc: Text{
			CS: "Pro stovky klientů, enterprise PTP (sub-ms až desítky µs). Dual PSU volitelně.",
			EN: "For hundreds of clients, enterprise PTP (sub-ms to tens of µs). Dual PSU optional.",
			PL: "Dla setek klientów, enterprise PTP (poniżej ms do kilkudziesięciu µs). Podwójny PSU opcjonalny.",
		},
		Note: Text{
			CS: "Výborný poměr výkon/cena; možnost redundantního PSU.",
			EN: "Great price/performance; optional redundant PSU.",
			PL: "Świetna relacja cena/wydajność; opcjonalny redundantny PSU.",
		},
		Defaults: models.TechSpec{
			Oscillator: models.OscillatorOCXO,
			LAN:        2,
			SFP:        0,
			Power:      models.PowerSingle,
		},
	},
	{
		ID:        models.Model4000,
		Name:      "NTS-4000",
		Image:     "/img/nts-4000.jpg",
		Datasheet: "https://www.elpromaelectronics.com/wp-content/uploads/woocommerce_uploads/2023/05/TimeSystems_NTS_4000_120525-t2ham9.pdf",
		Tag: Text{
			CS: "PTP/PRTC-A | vyšší kapacita",
			EN: "PTP/PRTC-A | higher capacity",
			PL: "PTP/PRTC-A | większa pojemność",
		},
		Desc: Text{
			CS: "Pro stovky až tisíce klientů, SFP, redundance, sub-µs. Dual PSU automaticky.",
			EN: "For hundreds to thousands, SFP, redundancy, sub-µs. Dual PSU included.",
			PL: "Dla setek do tysięcy, SFP, redundancja, poniżej µs. Podwójny PSU w zestawie.",
		},
		Note: Text{
			CS: "Telekom/utility scénáře; vysoká kapacita a spolehlivost.",
			EN: "Telecom/utility scenarios; high capacity and reliability.",
			PL: "Scenariusze telekom/utility; wysoka pojemność i niezawodność.",
		},
		Defaults: models.TechSpec{
			Oscillator:    models.OscillatorOCXO,
			LAN:           4,
			SFP:           2,
			Power:         models.PowerRedundant,
			RedundantGNSS: true,
		},
	},
	{
		ID:        models.Model5000,
		Name:      "NTS-5000",
		Image:     "/img/nts-5000.jpg",
		Datasheet: "https://www.elpromaelectronics.com/wp-content/uploads/woocommerce_uploads/2023/05/TimeSystems_NTS_5000_120525-eozbhw.pdf",
		Tag: Text{
			CS: "ePRTC / PRTC A/B | rubidium",
			EN: "ePRTC / PRTC A/B | rubidium",
			PL: "ePRTC / PRTC A/B | rubid",
		},
		Desc: Text{
			CS: "Pro velké/kritické instalace, ePRTC, dlouhý holdover, tisíce klientů. Dual PSU automaticky.",
			EN: "For large/critical installs, ePRTC, long holdover, thousands of clients. Dual PSU included.",
			PL: "Dla dużych/krytycznych instalacji, ePRTC, długi holdover, tysiące klientów. Podwójny PSU w zestawie.",
		},
		Note: Text{
			CS: "Maximální holdover a odolnost; rubidiový oscilátor.",
			EN: "Maximum holdover and resilience; rubidium oscillator.",
			PL: "Maksymalny holdover i odporność; oscylator rubidowy.",
		},
		Defaults: models.TechSpec{
			Oscillator:    models.OscillatorRubidium,
			LAN:           6,
			SFP:           2,
			Power:         models.PowerRedundant,
			RedundantGNSS: true,
		},
		PTPPorts: &PortRange{Min: 1, Max: 4},
	},
}

var catalogAccessories = []Accessory{
	{
		ID: models.AccessoryAntenna,
		Name: Text{
			CS: "NTS-antenna – náhradní anténa (1 ks je již v balení)",
			EN: "NTS-antenna – spare antenna (1 pc already in the box)",
			PL: "NTS-antenna – antena zapasowa (1 szt. w zestawie)",
		},
		Help: Text{
			CS: "Náhradní GNSS anténa navíc k dodané sadě.",
			EN: "Extra GNSS antenna in addition to the included one.",
			PL: "Dodatkowa antena GNSS oprócz dołączonej.",
		},
	},
	{
		ID: models.AccessoryIRIG,
		Name: Text{
			CS: "IRIG-B IN/OUT modul s 1PPS",
			EN: "IRIG-B IN/OUT module w/ 1PPS",
			PL: "Moduł IRIG-B IN/OUT z 1PPS",
		},
		Help: Text{
			CS: "IRIG-B rozhraní pro průmysl/utility; 1PPS pro synchronizační výstup.",
			EN: "IRIG-B interface for industry/utility; 1PPS output for sync.",
			PL: "Interfejs IRIG-B dla przemysłu/utility; wyjście 1PPS.",
		},
	},
	{
		ID: models.AccessoryFibreOptic,
		Name: Text{
			CS: "Fibre Optic Antenna Set",
			EN: "Fibre Optic Antenna Set",
			PL: "Zestaw światłowodowy do anteny",
		},
		Help: Text{
			CS: "Optický linkový set pro GNSS anténu/receiver (delší trasy, odrušení).",
			EN: "Optical link set for GNSS antenna/receiver (long runs, isolation).",
			PL: "Zestaw światłowodowy dla anteny/odbiornika GNSS (długie odcinki, izolacja).",
		},
	},
	{
		ID: models.AccessoryDualPSU,
		Name: Text{
			CS: "Dual Redundant Power Supply (jen NTS-3000)",
			EN: "Dual Redundant Power Supply (NTS-3000 only)",
			PL: "Podwójny zasilacz redundantny (tylko NTS-3000)",
		},
		Help: Text{
			CS: "Dvojité napájení PSU – dostupné jako volitelná výbava pouze pro NTS-3000.",
			EN: "Dual PSU available as an option for NTS-3000 only.",
			PL: "Podwójny PSU dostępny opcjonalnie wyłącznie dla NTS-3000.",
		},
		IncludedName: Text{
			CS: "Dual Redundant Power Supply – automaticky součástí",
			EN: "Dual Redundant Power Supply – included by default",
			PL: "Podwójny zasilacz – w zestawie",
		},
		IncludedHelp: Text{
			CS: "U modelů NTS-4000 a NTS-5000 je dual PSU standardně zahrnuto.",
			EN: "On NTS-4000 and NTS-5000, dual PSU is included by default.",
			PL: "W NTS-4000 i NTS-5000 podwójny PSU jest standardem.",
		},
		Per: map[models.ModelID]Availability{
			models.ModelPico3: Unavailable,
			models.Model3000:  Optional,
			models.Model4000:  Included,
			models.Model5000:  Included,
		},
	},
	{
		ID: models.AccessoryFW5071A,
		Name: Text{
			CS: "5071A special support (firmware)",
			EN: "5071A special support (firmware)",
			PL: "5071A specjalne wsparcie (firmware)",
		},
		Help: Text{
			CS: "Podpora pro specifické 5071A zdroje času (firmware).",
			EN: "Support for specific 5071A time sources (firmware).",
			PL: "Wsparcie dla specyficznych źródeł czasu 5071A (firmware).",
		},
	},
}

// Models returns the catalog models ordered from entry level to top tier.
// The returned slice is a copy.
func Models() []Model {
	out := make([]Model, len(catalogModels))
	copy(out, catalogModels)
	return out
}

// Lookup returns the model with the given id. It fails with ErrNotFound only
// for ids outside the closed ModelID set.
func Lookup(id models.ModelID) (Model, error) {
	for _, m := range catalogModels {
		if m.ID == id {
			return m, nil
		}
	}
	return Model{}, fmt.Errorf("model %q: %w", id, ErrNotFound)
}

// Accessories returns all accessories in display order.
func Accessories() []Accessory {
	out := make([]Accessory, len(catalogAccessories))
	copy(out, catalogAccessories)
	return out
}

// LookupAccessory returns the accessory with the given id.
func LookupAccessory(id models.AccessoryID) (Accessory, error) {
	for _, a := range catalogAccessories {
		if a.ID == id {
			return a, nil
		}
	}
	return Accessory{}, fmt.Errorf("accessory %q: %w", id, ErrNotFound)
}

// AvailabilityOf returns the availability of accessory acc on model id.
// Unknown accessories are Unavailable.
func AvailabilityOf(acc models.AccessoryID, id models.ModelID) Availability {
	a, err := LookupAccessory(acc)
	if err != nil {
		return Unavailable
	}
	return a.AvailabilityFor(id)
}

// Eligible reports whether acc may be part of a configuration's accessory
// selection for model id. Included accessories are not part of the selection.
func Eligible(acc models.AccessoryID, id models.ModelID) bool {
	return AvailabilityOf(acc, id) == Optional
}
