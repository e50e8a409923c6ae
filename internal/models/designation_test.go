package models

import "testing"

func TestDesignationIn(t *testing.T) {
	full := Designation{Ar: "عقد", En: "Contract", Fr: "Marché"}
	frOnly := Designation{Fr: "Marché"}
	arOnly := Designation{Ar: "عقد"}

	tests := []struct {
		name string
		d    Designation
		lang string
		want string
	}{
		{"exact ar", full, "ar", "عقد"},
		{"exact en", full, "en", "Contract"},
		{"exact fr", full, "fr", "Marché"},
		{"unknown lang falls back to fr", full, "de", "Marché"},
		{"empty lang falls back to fr", full, "", "Marché"},
		{"missing ar falls back", frOnly, "ar", "Marché"},
		{"fr missing, en missing, ar used", arOnly, "fr", "عقد"},
		{"all empty", Designation{}, "fr", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.In(tt.lang); got != tt.want {
				t.Errorf("In(%q) = %q, want %q", tt.lang, got, tt.want)
			}
		})
	}
}

func TestDesignationEmpty(t *testing.T) {
	if !(Designation{}).Empty() {
		t.Error("zero designation should be empty")
	}
	if (Designation{En: "x"}).Empty() {
		t.Error("designation with text should not be empty")
	}
}
