// Command datagen produces a synthetic route network in the dataset formats
// the planner ingests, for load testing and local development.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/skyroutes/planner/backend/internal/generator"
	"github.com/skyroutes/planner/backend/internal/ingest"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		cities       = flag.Int("cities", cfg.NumCities, "number of cities in the generated network")
		degree       = flag.Int("degree", cfg.AvgDegree, "outgoing connections attempted per city")
		directChance = flag.Float64("direct-chance", cfg.DirectChance, "probability a long connection is nonstop")
		seed         = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir    = flag.String("output-dir", "data", "directory to write connections.csv and flight_routes.metta")
		writeStdout  = flag.Bool("stdout", false, "write knowledge-base facts to stdout instead of files")
	)
	flag.Parse()

	genCfg := generator.Config{
		NumCities:    *cities,
		AvgDegree:    *degree,
		DirectChance: clampProbability(*directChance),
		Seed:         *seed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gen := generator.New(genCfg)
	dataset, err := gen.Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if *writeStdout {
		for _, conn := range dataset.Connections {
			fmt.Fprintln(os.Stdout, ingest.FormatFact(conn))
		}
		return
	}

	if err := generator.WriteDataset(dataset, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d connections across %d cities into %s\n",
		len(dataset.Connections), len(dataset.Coordinates), *outputDir)
}

func clampProbability(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
