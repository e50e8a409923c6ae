package models

// Designation is the trilingual naming carried by every procurement
// record. Classification never derives from this text; it only exists
// for display.
type Designation struct {
	Ar string `json:"ar"`
	En string `json:"en"`
	Fr string `json:"fr"`
}

// In returns the text for the requested language code (ar/en/fr),
// falling back fr -> en -> ar when the requested one is empty.
func (d Designation) In(lang string) string {
	var preferred string
	switch lang {
	case "ar":
		preferred = d.Ar
	case "en":
		preferred = d.En
	case "fr":
		preferred = d.Fr
	}
	if preferred != "" {
		return preferred
	}
	for _, s := range []string{d.Fr, d.En, d.Ar} {
		if s != "" {
			return s
		}
	}
	return ""
}

// Empty reports whether no language has text.
func (d Designation) Empty() bool {
	return d.Ar == "" && d.En == "" && d.Fr == ""
}
