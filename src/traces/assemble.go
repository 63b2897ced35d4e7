package traces

import (
	"github.com/iafilius/RubricViewer/src/logging"
	"github.com/iafilius/RubricViewer/src/types"
)

var log = logging.New("traces")

// Assemble builds the series for ids in the registry's display order.
// Ids without a registry entry are skipped.
func Assemble(reg *Registry, ids types.IDSet) []types.Series {
	if reg == nil {
		return nil
	}
	out := make([]types.Series, 0, len(ids))
	for _, id := range reg.order {
		if !ids.Has(id) {
			continue
		}
		out = append(out, reg.entries[id]())
	}
	if len(out) < ids.Len() && logging.Enabled(logging.LevelDebug) {
		for _, id := range ids.Sorted() {
			if _, ok := reg.entries[id]; !ok {
				log.Debugf("skipping unknown curve %q", id)
			}
		}
	}
	return out
}

// Build resolves sel and assembles the result.
func Build(reg *Registry, sel Selection) []types.Series {
	return Assemble(reg, Resolve(sel))
}

// IDs lists the ids of series in order.
func IDs(series []types.Series) []types.CurveID {
	out := make([]types.CurveID, len(series))
	for i, s := range series {
		out[i] = s.ID
	}
	return out
}
