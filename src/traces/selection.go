package traces

import (
	"github.com/iafilius/RubricViewer/src/types"
)

// DefaultIDs are shown when nothing is selected.
var DefaultIDs = []types.CurveID{
	types.IDPower0333,
	types.IDPower05,
	types.IDPower1,
	types.IDPower2,
	types.IDPower3,
	types.IDHybComposite,
	types.IDBaseline,
}

// Selection is what the selection UI currently reports. IDs come from curve
// toggles; Legacy holds bare exponents from the older k-preset controls.
type Selection struct {
	IDs    []types.CurveID
	Legacy []float64
}

// Empty reports whether neither representation holds anything.
func (s Selection) Empty() bool { return len(s.IDs) == 0 && len(s.Legacy) == 0 }

// LegacyID maps a legacy exponent value to its curve id.
func LegacyID(v float64) types.CurveID { return PowerID(v) }

// Resolve merges both selection representations. An empty result falls back
// to DefaultIDs. Unknown ids are kept; Assemble drops them.
func Resolve(sel Selection) types.IDSet {
	out := types.NewIDSet(sel.IDs...)
	for _, v := range sel.Legacy {
		out.Add(LegacyID(v))
	}
	if out.Len() == 0 {
		return types.NewIDSet(DefaultIDs...)
	}
	return out
}
