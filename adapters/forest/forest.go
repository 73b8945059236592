package forest

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"heartrisk/domain/encoding"
	"heartrisk/internal/errors"
)

// Node is one node of a decision tree in the serialized artifact. Internal
// nodes carry a split (feature index, threshold, child indices); leaves are
// marked by Left == -1 and carry per-class sample counts.
type Node struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Counts    []float64 `json:"counts,omitempty"`
}

// Tree is a flat node array; the root is node 0.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

type artifact struct {
	Model     string `json:"model"`
	Version   int    `json:"version"`
	NFeatures int    `json:"n_features"`
	Classes   []int  `json:"classes"`
	Trees     []Tree `json:"trees"`
}

// Model is a loaded random-forest classifier. It is read-only after Load
// and safe to share across requests.
type Model struct {
	path  string
	trees []Tree
}

// ModelInfo summarises a loaded artifact for the operational endpoints.
type ModelInfo struct {
	Path          string  `json:"path"`
	TreeCount     int     `json:"tree_count"`
	FeatureCount  int     `json:"feature_count"`
	NodeCount     int     `json:"node_count"`
	TreeBiasMean  float64 `json:"tree_bias_mean"`
	TreeBiasStdev float64 `json:"tree_bias_stdev"`
}

// Load reads and validates a forest artifact from disk. Any failure is a
// model-load failure: the caller is expected to halt before serving.
func Load(path string) (*Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ModelLoadFailed(fmt.Sprintf("cannot read model artifact %s", path), err)
	}

	var art artifact
	if err := json.Unmarshal(raw, &art); err != nil {
		return nil, errors.ModelLoadFailed(fmt.Sprintf("model artifact %s is not valid JSON", path), err)
	}

	if err := validate(&art); err != nil {
		return nil, errors.ModelLoadFailed(fmt.Sprintf("model artifact %s is structurally invalid", path), err)
	}

	log.Printf("[Forest] Loaded model artifact %s: %d trees, %d features", path, len(art.Trees), art.NFeatures)
	return &Model{path: path, trees: art.Trees}, nil
}

func validate(art *artifact) error {
	if art.Model != "random_forest" {
		return fmt.Errorf("unsupported model kind %q", art.Model)
	}
	if art.NFeatures != encoding.FeatureCount {
		return fmt.Errorf("artifact expects %d features, classifier contract requires %d", art.NFeatures, encoding.FeatureCount)
	}
	if len(art.Classes) != 2 || art.Classes[0] != 0 || art.Classes[1] != 1 {
		return fmt.Errorf("artifact classes must be [0, 1], got %v", art.Classes)
	}
	if len(art.Trees) == 0 {
		return fmt.Errorf("artifact contains no trees")
	}

	for ti, tree := range art.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("tree %d has no nodes", ti)
		}
		for ni, node := range tree.Nodes {
			if node.Left == -1 {
				if len(node.Counts) != 2 {
					return fmt.Errorf("tree %d leaf %d must carry two class counts", ti, ni)
				}
				if node.Counts[0] < 0 || node.Counts[1] < 0 || node.Counts[0]+node.Counts[1] == 0 {
					return fmt.Errorf("tree %d leaf %d has invalid class counts %v", ti, ni, node.Counts)
				}
				continue
			}
			if node.Feature < 0 || node.Feature >= art.NFeatures {
				return fmt.Errorf("tree %d node %d splits on out-of-range feature %d", ti, ni, node.Feature)
			}
			if node.Left <= ni || node.Left >= len(tree.Nodes) || node.Right <= ni || node.Right >= len(tree.Nodes) {
				return fmt.Errorf("tree %d node %d has dangling child index", ti, ni)
			}
		}
	}
	return nil
}

// treeProbability routes the row down one tree and returns the
// positive-class fraction at the reached leaf.
func treeProbability(tree Tree, row encoding.FeatureVector) (float64, error) {
	i := 0
	// Bounded by node count; validated trees always reach a leaf.
	for steps := 0; steps <= len(tree.Nodes); steps++ {
		node := tree.Nodes[i]
		if node.Left == -1 {
			return node.Counts[1] / (node.Counts[0] + node.Counts[1]), nil
		}
		if row[node.Feature] <= node.Threshold {
			i = node.Left
		} else {
			i = node.Right
		}
	}
	return 0, errors.InternalError("tree traversal did not reach a leaf")
}

// EstimateProbability returns the mean positive-class fraction across all
// trees for one encoded row.
func (m *Model) EstimateProbability(row encoding.FeatureVector) (float64, error) {
	votes := make([]float64, 0, len(m.trees))
	for _, tree := range m.trees {
		p, err := treeProbability(tree, row)
		if err != nil {
			return 0, err
		}
		votes = append(votes, p)
	}
	mean, err := stats.Mean(votes)
	if err != nil {
		return 0, errors.Wrap(err, "failed to aggregate tree votes")
	}
	return mean, nil
}

// Classify returns the predicted label for one encoded row. The label is
// the argmax of the averaged class probabilities, so an exact 0.5 resolves
// to the negative class.
func (m *Model) Classify(row encoding.FeatureVector) (int, error) {
	p, err := m.EstimateProbability(row)
	if err != nil {
		return 0, err
	}
	if p > 0.5 {
		return 1, nil
	}
	return 0, nil
}

// Info reports artifact shape plus the spread of per-tree training bias
// (each tree's count-weighted positive fraction over its leaves).
func (m *Model) Info() ModelInfo {
	nodeCount := 0
	biases := make([]float64, 0, len(m.trees))
	for _, tree := range m.trees {
		nodeCount += len(tree.Nodes)
		var pos, total float64
		for _, node := range tree.Nodes {
			if node.Left == -1 {
				pos += node.Counts[1]
				total += node.Counts[0] + node.Counts[1]
			}
		}
		if total > 0 {
			biases = append(biases, pos/total)
		}
	}

	info := ModelInfo{
		Path:         m.path,
		TreeCount:    len(m.trees),
		FeatureCount: encoding.FeatureCount,
		NodeCount:    nodeCount,
	}
	if len(biases) > 0 {
		info.TreeBiasMean = stat.Mean(biases, nil)
	}
	if len(biases) > 1 {
		info.TreeBiasStdev = stat.StdDev(biases, nil)
	}
	return info
}
