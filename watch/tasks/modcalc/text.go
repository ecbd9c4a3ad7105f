package modcalc

import "fmt"

const headerText = "MOD Calculator"

// BodyText is the percentage line, e.g. "21% Oxygen".
func BodyText(percent int) string {
	return fmt.Sprintf("%d%% Oxygen", percent)
}

// LabelText is the depth line, e.g. "MOD: 187 feet".
func LabelText(percent int) string {
	return fmt.Sprintf("MOD: %d feet", MOD(percent))
}
