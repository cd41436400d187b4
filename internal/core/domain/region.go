package domain

import "regexp"

// regionGazetteer is the closed list of Indian states and union
// territories together with common abbreviations and aliases, including
// frequent misspellings seen in user queries. Order matters: when a text
// could match several entries, the earliest entry in this list wins.
// That priority is a deliberate policy decision, so the list must not be
// sorted or deduplicated.
var regionGazetteer = []string{
	"Andhra Pradesh", "Andhra", "AP", "Andhra Pradseh",
	"Arunachal Pradesh", "Arunachal", "AR",
	"Assam", "AS",
	"Bihar", "BR",
	"Chhattisgarh", "Chhattisgarh", "CG",
	"Goa", "GA",
	"Gujarat", "GJ",
	"Haryana", "HR",
	"Himachal Pradesh", "Himachal", "HP",
	"Jharkhand", "JH",
	"Karnataka", "KA",
	"Kerala", "KL",
	"Madhya Pradesh", "Madhya", "MP",
	"Maharashtra", "MH",
	"Manipur", "MN",
	"Meghalaya", "ML",
	"Mizoram", "MZ",
	"Nagaland", "NL",
	"Odisha", "Orissa", "OD",
	"Punjab", "PB",
	"Rajasthan", "RJ",
	"Sikkim", "SK",
	"Tamil Nadu", "Tamilnadu", "TN",
	"Telangana", "TS",
	"Tripura", "TR",
	"Uttar Pradesh", "UP",
	"Uttarakhand", "UK",
	"West Bengal", "Bengal", "WB",
	"Delhi", "NCT Delhi", "DL",
	"Jammu and Kashmir", "J&K", "JK",
	"Ladakh", "LA",
	"Puducherry", "Pondicherry", "PY",
}

// regionPatterns holds one compiled whole-word pattern per gazetteer
// entry, in gazetteer order.
var regionPatterns = compileRegionPatterns()

func compileRegionPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(regionGazetteer))
	for i, name := range regionGazetteer {
		patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
	}
	return patterns
}

// ResolveRegion extracts the first jurisdiction mention from free text.
// Matching is whole-word and case-insensitive, scanning the gazetteer in
// priority order. Returns the gazetteer entry as listed (not normalised
// to the canonical state name) and false when nothing matches.
func ResolveRegion(text string) (string, bool) {
	for i, pattern := range regionPatterns {
		if pattern.MatchString(text) {
			return regionGazetteer[i], true
		}
	}
	return "", false
}

// Regions returns a copy of the gazetteer in priority order.
func Regions() []string {
	out := make([]string, len(regionGazetteer))
	copy(out, regionGazetteer)
	return out
}
