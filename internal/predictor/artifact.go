// Package predictor loads the trained maintenance regressor artifact and
// scores assembled feature rows with it.
package predictor

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ukydev/fleet-maintenance/internal/schema"
)

// Artifact is the serialized regression pipeline produced by offline
// training. It mirrors what the training side fits: a per-field one-hot
// vocabulary, optional standardization parameters for numeric fields and
// a forest of regression trees. The feature schema is embedded so a
// version drift between training and serving is detected, not guessed.
type Artifact struct {
	SchemaVersion string              `json:"schema_version"`
	Features      []schema.Field      `json:"features"`
	Encoder       map[string][]string `json:"encoder"`
	Scaler        *ScalerParams       `json:"scaler,omitempty"`
	Forest        Forest              `json:"forest"`
}

// ScalerParams holds per-feature standardization parameters, keyed by
// numeric feature name. A zero scale centers only.
type ScalerParams struct {
	Center map[string]float64 `json:"center"`
	Scale  map[string]float64 `json:"scale"`
}

// Forest is a bagged ensemble of regression trees; the prediction is the
// mean of the tree outputs.
type Forest struct {
	Trees []Tree `json:"trees"`
}

// Tree is a binary regression tree stored as a flat node array rooted at
// index 0.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Node is one tree node. Internal nodes route on the encoded feature
// vector: index Feature <= Threshold goes Left, otherwise Right. A node
// with Left == -1 is a leaf and Value is its output.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

// LoadArtifact reads and validates an artifact file. os.IsNotExist on the
// returned error distinguishes "no model installed" from a corrupt one.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode artifact %s: %w", path, err)
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("invalid artifact %s: %w", path, err)
	}
	return &a, nil
}

// Schema returns the feature schema the artifact was trained against.
func (a *Artifact) Schema() schema.Schema {
	return schema.Schema{Version: a.SchemaVersion, Fields: a.Features}
}

// Validate checks that the artifact is internally consistent: a sound
// feature schema, a vocabulary for every categorical feature, tree node
// references in range and a non-empty forest.
func (a *Artifact) Validate() error {
	s := a.Schema()
	if err := s.Validate(); err != nil {
		return err
	}
	for _, f := range a.Features {
		if f.Kind == schema.Categorical {
			if _, ok := a.Encoder[f.Name]; !ok {
				return fmt.Errorf("categorical feature %q has no encoder vocabulary", f.Name)
			}
		}
	}
	if len(a.Forest.Trees) == 0 {
		return fmt.Errorf("artifact forest has no trees")
	}
	width := a.vectorWidth()
	for ti, tree := range a.Forest.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("tree %d has no nodes", ti)
		}
		for ni, n := range tree.Nodes {
			if n.Left == -1 {
				continue
			}
			if n.Left < 0 || n.Left >= len(tree.Nodes) || n.Right < 0 || n.Right >= len(tree.Nodes) {
				return fmt.Errorf("tree %d node %d has out-of-range children", ti, ni)
			}
			if n.Feature < 0 || n.Feature >= width {
				return fmt.Errorf("tree %d node %d routes on feature %d, vector width is %d", ti, ni, n.Feature, width)
			}
		}
	}
	return nil
}

// vectorWidth is the length of the encoded feature vector: one column per
// vocabulary level of each categorical feature, one per numeric feature.
func (a *Artifact) vectorWidth() int {
	width := 0
	for _, f := range a.Features {
		if f.Kind == schema.Categorical {
			width += len(a.Encoder[f.Name])
		} else {
			width++
		}
	}
	return width
}
