package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"gocopula/adapters/distsampler"
	"gocopula/adapters/excel"
	"gocopula/app"
	"gocopula/internal"
	"gocopula/internal/config"
	"gocopula/internal/reorder"
	"gocopula/internal/report"
	"gocopula/ports"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	marginalPath := flag.String("marginals", cfg.Paths.MarginalFile, "marginal samples file (xlsx or csv)")
	specsPath := flag.String("specs", "", "marginal spec JSON file; draws marginals instead of reading -marginals")
	copulaPath := flag.String("copula", cfg.Paths.CopulaFile, "copula samples file (xlsx or csv)")
	outputPath := flag.String("out", cfg.Paths.OutputFile, "output file (xlsx)")
	tiePolicy := flag.String("tie-policy", string(cfg.Reorder.TiePolicy), "tie policy: first_wins or last_wins")
	workers := flag.Int("workers", cfg.Reorder.Workers, "parallel workers (1 = sequential)")
	seed := flag.Int64("seed", cfg.Reorder.Seed, "seed for drawn marginals (with -specs)")
	flag.Parse()

	if *copulaPath == "" || (*marginalPath == "" && *specsPath == "") {
		fmt.Fprintln(os.Stderr, "-copula and one of -marginals or -specs are required")
		flag.Usage()
		os.Exit(2)
	}

	reorderer := reorder.NewReorderer()
	if err := reorderer.SetTiePolicy(reorder.TiePolicy(*tiePolicy)); err != nil {
		log.Fatalf("invalid tie policy: %v", err)
	}
	reorderer.SetWorkers(*workers)

	service := app.NewReorderService(reorderer, nil, internal.NewDefaultLogger())
	service.SetTailQuantile(cfg.Reorder.TailQuantile)

	ctx := context.Background()

	var result *app.ReorderResult
	if *specsPath != "" {
		specs, err := loadSpecs(*specsPath)
		if err != nil {
			log.Fatalf("failed to load marginal specs: %v", err)
		}
		result, err = service.ReorderFromPorts(ctx, distsampler.New(), specs,
			excel.NewBatchReader(*copulaPath), *seed)
		if err != nil {
			log.Fatalf("reorder failed: %v", err)
		}
	} else {
		marginals, err := excel.NewBatchReader(*marginalPath).ReadBatch(ctx)
		if err != nil {
			log.Fatalf("failed to read marginals: %v", err)
		}
		copulaSamples, err := excel.NewBatchReader(*copulaPath).ReadBatch(ctx)
		if err != nil {
			log.Fatalf("failed to read copula samples: %v", err)
		}
		result, err = service.Reorder(ctx, marginals, copulaSamples)
		if err != nil {
			log.Fatalf("reorder failed: %v", err)
		}
	}

	if err := excel.NewBatchWriter(*outputPath).WriteBatch(ctx, result.Output); err != nil {
		log.Fatalf("failed to write output: %v", err)
	}

	fmt.Println(report.Markdown(result.Manifest))
	fmt.Printf("wrote %s\n", *outputPath)
}

func loadSpecs(path string) ([]ports.MarginalSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var specs []ports.MarginalSpec
	if err := json.Unmarshal(data, &specs); err != nil {
		return nil, err
	}
	return specs, nil
}
