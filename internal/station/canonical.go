// Package station provides display-name cleanup for station labels.
package station

import "strings"

// rule is a single literal substring replacement.
type rule struct {
	old string
	new string
}

// replacements is the fixed cleanup table. Rules apply in order and
// later rules see the output of earlier ones, so ordering is load
// bearing: whole-name rules precede the generic "at X" abbreviations,
// and longer literals precede their prefixes.
var replacements = []rule{
	{"Central Square at Mass Ave / Essex St", "Central Square"},
	{"Central Square at Mass Ave", "Central Square"},
	{"MIT Stata Center at Vassar St / Main St", "Stata Center"},
	{"MIT at Mass Ave / Amherst St", "MIT Mass Ave"},
	{"MIT Pacific St at Purrington St", "MIT Pacific"},
	{"Linear Park - Mass. Ave. at Cameron Ave.", "Linear Park"},
	{"MIT Vassar St", "Vassar St"},
	{"Ames St at Main", "Ames @ Main"},
	{"Davis Square", "Davis Sq"},
	{"- Cambridge St", ""},
	{"at Mass Ave", "@ Mass Ave"},
	{"at Amherst St", "@ Amherst"},
	{"at Main St", "@ Main"},
	{"at Vassar St", "@ Vassar"},
}

// CanonicalName applies the cleanup table in order and trims the
// result. It must be used everywhere a station name reaches an output
// so that rankings, route labels, and the geocode list agree.
func CanonicalName(name string) string {
	for _, r := range replacements {
		name = strings.ReplaceAll(name, r.old, r.new)
	}
	return strings.TrimSpace(name)
}
