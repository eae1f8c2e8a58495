package preference

import "strings"

// Preferences holds the optional user answers used to build a query.
// Missing answers are empty strings.
type Preferences struct {
	RefreshType string `json:"refresh_type"`
	SaunaTemp   string `json:"sauna_temp"`
	WaterTemp   string `json:"water_temp"`
}

// Query joins the answers with the same separator as catalog feature text.
func (p Preferences) Query() string {
	return strings.Join([]string{p.RefreshType, p.SaunaTemp, p.WaterTemp}, " ")
}

// Empty reports whether every answer is blank.
func (p Preferences) Empty() bool {
	return strings.TrimSpace(p.Query()) == ""
}
