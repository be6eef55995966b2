package forms

// provinceMunicipalities is the static lookup table behind the cascading
// province/municipality picker. Municipalities are listed in display order.
var provinceMunicipalities = map[string][]string{
	"Palawan": {
		"Puerto Princesa",
		"Aborlan",
		"Brooke's Point",
		"Coron",
		"El Nido",
		"Roxas",
		"Taytay",
	},
	"Cebu": {
		"Cebu City",
		"Mandaue",
		"Lapu-Lapu",
		"Talisay",
		"Danao",
		"Carcar",
	},
	"Laguna": {
		"Santa Cruz",
		"Calamba",
		"San Pablo",
		"Los Baños",
		"Biñan",
	},
	"Benguet": {
		"La Trinidad",
		"Baguio",
		"Itogon",
		"Tuba",
	},
	"Isabela": {
		"Ilagan",
		"Cauayan",
		"Santiago",
		"Tumauini",
	},
	"Davao del Sur": {
		"Digos",
		"Bansalan",
		"Hagonoy",
		"Santa Cruz",
	},
}

// provinceOrder keeps the provinces in display order; map iteration order is
// not stable.
var provinceOrder = []string{
	"Palawan",
	"Cebu",
	"Laguna",
	"Benguet",
	"Isabela",
	"Davao del Sur",
}

// Provinces returns the selectable provinces in display order.
func Provinces() []string {
	return provinceOrder
}

// Municipalities returns the municipalities of a province in display order,
// or an empty list for an unknown province.
func Municipalities(province string) []string {
	return provinceMunicipalities[province]
}

// ValidLocation reports whether the municipality belongs to the province.
func ValidLocation(province, municipality string) bool {
	for _, m := range provinceMunicipalities[province] {
		if m == municipality {
			return true
		}
	}
	return false
}
