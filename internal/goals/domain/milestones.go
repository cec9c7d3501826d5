package domain

// MilestoneThresholds are checked in ascending order.
var MilestoneThresholds = []int{25, 50, 75, 100}

// Milestones records which thresholds have been reached. The JSON shape
// is {"25":bool,"50":bool,"75":bool,"100":bool}.
type Milestones struct {
	Quarter      bool `json:"25"`
	Half         bool `json:"50"`
	ThreeQuarter bool `json:"75"`
	Full         bool `json:"100"`
}

// Reached reports whether threshold m was reached.
func (m Milestones) Reached(threshold int) bool {
	switch threshold {
	case 25:
		return m.Quarter
	case 50:
		return m.Half
	case 75:
		return m.ThreeQuarter
	case 100:
		return m.Full
	}
	return false
}

func (m *Milestones) set(threshold int) {
	switch threshold {
	case 25:
		m.Quarter = true
	case 50:
		m.Half = true
	case 75:
		m.ThreeQuarter = true
	case 100:
		m.Full = true
	}
}
