package ingest

import "strings"

// operatorAliases maps colloquial operator names to the labels the ANFR
// dataset actually uses.
var operatorAliases = map[string]string{
	"FREE":          "FREE MOBILE",
	"ORANGE FRANCE": "ORANGE",
	"BOUYGUES":      "BOUYGUES TELECOM",
}

// NormalizeOperator maps a user-supplied operator name onto the dataset's
// label format: uppercased, with common short forms expanded. Dataset labels
// themselves are never rewritten; this is only for matching user input in
// locate mode.
func NormalizeOperator(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	if canonical, ok := operatorAliases[name]; ok {
		return canonical
	}
	return name
}
