// modelcheck validates a forest artifact before it is deployed next to the
// server: it loads the file, prints its shape, and scores one fixed row.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"heartrisk/adapters/forest"
	"heartrisk/domain/encoding"
)

// smokeRow is a fixed, in-domain feature row used purely to exercise the
// classify and probability paths of a candidate artifact.
var smokeRow = encoding.FeatureVector{63, 145, 233, 150, 2.3, 1, 3, 1, 1, 0, 0, 0, 0}

func main() {
	path := flag.String("model", "model_random.json", "path to the model artifact")
	flag.Parse()

	model, err := forest.Load(*path)
	if err != nil {
		log.Printf("Artifact check failed: %v", err)
		os.Exit(1)
	}

	info := model.Info()
	fmt.Printf("artifact:       %s\n", info.Path)
	fmt.Printf("trees:          %d\n", info.TreeCount)
	fmt.Printf("features:       %d\n", info.FeatureCount)
	fmt.Printf("nodes:          %d\n", info.NodeCount)
	fmt.Printf("tree bias mean: %.4f (stdev %.4f)\n", info.TreeBiasMean, info.TreeBiasStdev)

	label, err := model.Classify(smokeRow)
	if err != nil {
		log.Printf("Smoke classification failed: %v", err)
		os.Exit(1)
	}
	probability, err := model.EstimateProbability(smokeRow)
	if err != nil {
		log.Printf("Smoke probability estimation failed: %v", err)
		os.Exit(1)
	}

	fmt.Printf("smoke row:      label=%d probability=%.4f\n", label, probability)
}
