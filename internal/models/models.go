package models

// ModelID identifies one of the four time-server models in the catalog.
type ModelID string

const (
	ModelPico3 ModelID = "nts-pico3"
	Model3000  ModelID = "nts-3000"
	Model4000  ModelID = "nts-4000"
	Model5000  ModelID = "nts-5000"
)

// DevBand is the device-count tier chosen in the first wizard step.
type DevBand string

const (
	BandSmall  DevBand = "small"
	BandMedium DevBand = "medium"
	BandLarge  DevBand = "large"
	BandXL     DevBand = "xl"
)

// Accuracy is the required timing accuracy tier.
type Accuracy string

const (
	AccuracyNTP     Accuracy = "ntp_ms"
	AccuracyPTPEnt  Accuracy = "ptp_ent"
	AccuracyPTPPRTC Accuracy = "ptp_prtc"
	AccuracyEPRTC   Accuracy = "eprtc"
)

// Oscillator is the reference oscillator fitted to a model.
type Oscillator string

const (
	OscillatorTCXO     Oscillator = "TCXO"
	OscillatorOCXO     Oscillator = "OCXO"
	OscillatorRubidium Oscillator = "Rb"
)

// PowerMode describes whether a unit has one or two power supplies.
type PowerMode string

const (
	PowerSingle    PowerMode = "Single"
	PowerRedundant PowerMode = "Redundant"
)

// AccessoryID is a stable accessory identifier. Display text is looked up
// separately per language and is never used as a key.
type AccessoryID string

const (
	AccessoryAntenna    AccessoryID = "antenna"
	AccessoryIRIG       AccessoryID = "irig"
	AccessoryFibreOptic AccessoryID = "fibre_optic"
	AccessoryDualPSU    AccessoryID = "dual_psu"
	AccessoryFW5071A    AccessoryID = "fw_5071a"
)

// Lang is a supported display language.
type Lang string

const (
	LangCS Lang = "cs"
	LangEN Lang = "en"
	LangPL Lang = "pl"
)

// DefaultPTPProfile is the PTP profile preset on every new configuration.
const DefaultPTPProfile = "Default"

// TechSpec is the set of technical attributes that follow from the model.
type TechSpec struct {
	Oscillator    Oscillator `json:"oscillator" yaml:"oscillator" validate:"required,oneof=TCXO OCXO Rb"`
	LAN           int        `json:"lan" yaml:"lan" validate:"min=0"`
	SFP           int        `json:"sfp" yaml:"sfp" validate:"min=0"`
	Power         PowerMode  `json:"power" yaml:"power" validate:"required,oneof=Single Redundant"`
	RedundantGNSS bool       `json:"redundant_gnss" yaml:"redundant_gnss"`
}

// Configuration is the wizard state: the band and accuracy decision, the
// model derived from it, and the user's accessory and contact choices.
//
// PTPPorts is zero unless the model offers a selectable PTP port count.
type Configuration struct {
	Model    ModelID  `json:"model" yaml:"model" validate:"required,oneof=nts-pico3 nts-3000 nts-4000 nts-5000"`
	DevBand  DevBand  `json:"dev_band" yaml:"dev_band" validate:"required,oneof=small medium large xl"`
	Accuracy Accuracy `json:"accuracy" yaml:"accuracy" validate:"required,oneof=ntp_ms ptp_ent ptp_prtc eprtc"`

	TechSpec `yaml:",inline"`

	PTPProfile  string        `json:"ptp_profile" yaml:"ptp_profile"`
	Accessories []AccessoryID `json:"accessories" yaml:"accessories" validate:"dive,oneof=antenna irig fibre_optic dual_psu fw_5071a"`
	PTPPorts    int           `json:"ptp_ports,omitempty" yaml:"ptp_ports,omitempty" validate:"min=0,max=4"`
	Company     string        `json:"company" yaml:"company"`
	Contact     string        `json:"contact" yaml:"contact"`
	Notes       string        `json:"notes" yaml:"notes"`
}

// HasAccessory reports whether id is in the accessory selection.
func (c Configuration) HasAccessory(id AccessoryID) bool {
	for _, a := range c.Accessories {
		if a == id {
			return true
		}
	}
	return false
}

// ValidBands is the set of allowed device band values.
var ValidBands = map[DevBand]bool{
	BandSmall:  true,
	BandMedium: true,
	BandLarge:  true,
	BandXL:     true,
}

// ValidAccuracies is the set of allowed accuracy tier values.
var ValidAccuracies = map[Accuracy]bool{
	AccuracyNTP:     true,
	AccuracyPTPEnt:  true,
	AccuracyPTPPRTC: true,
	AccuracyEPRTC:   true,
}

// ValidLangs is the set of supported display languages.
var ValidLangs = map[Lang]bool{
	LangCS: true,
	LangEN: true,
	LangPL: true,
}
