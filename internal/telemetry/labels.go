package telemetry

// Unknown is shown for an enumerated value outside its label table.
const Unknown = "???"

var lateralModes = []string{"", "ROL", "HDG", "GPS", "VOR", "LOC", "BC"}

var verticalModes = []string{"", "ALT", "VS", "PIT", "IAS", "ALTS", "GS", "GP"}

var lateralArmed = []string{"", "rol", "hdg", "GPS", "VOR", "LOC", "BC"}

var verticalArmed = map[int]string{
	0: "", 1: "ALTS", 2: "ALT", 4: "GS", 5: "ALTS  GS", 6: "ALT  GS",
	8: "GP", 9: "ALTS  GP", 10: "ALT  GP",
}

var navCDILabels = []string{"GPS", "LOC1", "VOR1", "DME1", "LOC2", "VOR2", "DME2", "VOR1", "VOR2", "", ""}

var approachTypes = []string{"", "GPS", "VOR", "NDB", "ILS", "LOC", "SDF", "LDA", "L/VNAV", "VOR/D", "NDB/D", "RNAV", "BC"}

var cdiScaleLabels = []string{
	"DEP", "TERM", "TDEP", "TARR", "ENR", "OCN", "LNAV", "LNAV+V", "VIS", "L/VNAV",
	"LP", "LP+V", "LPV", "RNP", "APR", "MISS", "VFRE", "VFRT", "VFRA", "   ",
}

var navTypes = map[int]string{1: "ILS", 2: "VOR", 3: "DME", 4: "ADF", 7: "- - -"}

func label(table []string, i int) string {
	if i < 0 || i >= len(table) {
		return Unknown
	}
	return table[i]
}

func labelMap(table map[int]string, i int) string {
	if l, ok := table[i]; ok {
		return l
	}
	return Unknown
}

// LateralModeLabel returns the active autopilot lateral mode.
func (s *State) LateralModeLabel() string { return label(lateralModes, s.APLateralMode) }

// VerticalModeLabel returns the active autopilot vertical mode.
func (s *State) VerticalModeLabel() string { return label(verticalModes, s.APVerticalMode) }

// LateralArmedLabel returns the armed autopilot lateral mode.
func (s *State) LateralArmedLabel() string { return label(lateralArmed, s.APLateralArmed) }

// VerticalArmedLabel returns the armed autopilot vertical modes.
func (s *State) VerticalArmedLabel() string { return labelMap(verticalArmed, s.APVerticalArmed) }

// NavCDILabelText returns the nav receiver driving the CDI.
func (s *State) NavCDILabelText() string { return label(navCDILabels, s.NavCDILabel) }

// ApproachLabel returns the approach type.
func (s *State) ApproachLabel() string { return label(approachTypes, s.ApproachType) }

// CDIScaleText returns the CDI scale (flight phase) label.
func (s *State) CDIScaleText() string { return label(cdiScaleLabels, s.CDIScaleLabel) }

// NavTypeLabel returns the station type label of a nav receiver.
func NavTypeLabel(t int) string { return labelMap(navTypes, t) }
