package domain

import "strings"

// FallbackProvinceCode is used for provinces missing from the table. The
// shared fallback keeps registration working for unknown provinces; the
// unique agent-code index still rules out collisions across them.
const FallbackProvinceCode = "XX"

// provinceCodes maps Indonesian province names to the two-letter codes used
// in agent codes (ISO 3166-2:ID subdivision codes). Immutable after init.
var provinceCodes = map[string]string{
	"aceh":                      "AC",
	"sumatera utara":            "SU",
	"sumatera barat":            "SB",
	"riau":                      "RI",
	"kepulauan riau":            "KR",
	"jambi":                     "JA",
	"sumatera selatan":          "SS",
	"kepulauan bangka belitung": "BB",
	"bengkulu":                  "BE",
	"lampung":                   "LA",
	"dki jakarta":               "JK",
	"jawa barat":                "JB",
	"banten":                    "BT",
	"jawa tengah":               "JT",
	"di yogyakarta":             "YO",
	"jawa timur":                "JI",
	"bali":                      "BA",
	"nusa tenggara barat":       "NB",
	"nusa tenggara timur":       "NT",
	"kalimantan barat":          "KB",
	"kalimantan tengah":         "KT",
	"kalimantan selatan":        "KS",
	"kalimantan timur":          "KI",
	"kalimantan utara":          "KU",
	"sulawesi utara":            "SA",
	"gorontalo":                 "GO",
	"sulawesi tengah":           "ST",
	"sulawesi barat":            "SR",
	"sulawesi selatan":          "SN",
	"sulawesi tenggara":         "SG",
	"maluku":                    "MA",
	"maluku utara":              "MU",
	"papua":                     "PA",
	"papua barat":               "PB",
}

// ProvinceCode returns the two-letter code for a province name, matching
// case-insensitively, or FallbackProvinceCode when unknown.
func ProvinceCode(province string) string {
	code, ok := provinceCodes[strings.ToLower(strings.TrimSpace(province))]
	if !ok {
		return FallbackProvinceCode
	}
	return code
}
