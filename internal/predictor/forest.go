package predictor

import (
	"fmt"

	"github.com/ukydev/fleet-maintenance/internal/features"
	"github.com/ukydev/fleet-maintenance/internal/schema"
)

// encode turns an assembled row into the flat vector the forest routes
// on. Columns follow feature order, categorical features expanding to one
// column per vocabulary level. An unseen categorical level encodes to an
// all-zero block, matching the training encoder's unknown handling.
func (a *Artifact) encode(row features.Row) ([]float64, error) {
	if len(row.Values) != len(a.Features) {
		return nil, fmt.Errorf("row has %d fields, artifact expects %d", len(row.Values), len(a.Features))
	}

	vec := make([]float64, 0, a.vectorWidth())
	for i, f := range a.Features {
		v := row.Values[i]
		if v.Field.Name != f.Name || v.Field.Kind != f.Kind {
			return nil, fmt.Errorf("row field %d is %s/%s, artifact expects %s/%s",
				i, v.Field.Name, v.Field.Kind, f.Name, f.Kind)
		}

		if f.Kind == schema.Categorical {
			for _, level := range a.Encoder[f.Name] {
				if v.Str == level {
					vec = append(vec, 1)
				} else {
					vec = append(vec, 0)
				}
			}
			continue
		}

		x := v.Num
		if a.Scaler != nil {
			if center, ok := a.Scaler.Center[f.Name]; ok {
				x -= center
				if scale := a.Scaler.Scale[f.Name]; scale != 0 {
					x /= scale
				}
			}
		}
		vec = append(vec, x)
	}
	return vec, nil
}

// score runs the encoded vector through every tree and averages.
func (a *Artifact) score(vec []float64) float64 {
	sum := 0.0
	for _, tree := range a.Forest.Trees {
		sum += tree.eval(vec)
	}
	return sum / float64(len(a.Forest.Trees))
}

func (t *Tree) eval(vec []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Left == -1 {
			return n.Value
		}
		if vec[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}
