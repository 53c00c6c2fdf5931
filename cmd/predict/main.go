// Package main is a CLI for running cost and time predictions against a
// model bundle without standing up the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dev16mehta/ToolBelt-AI/internal/estimate"
	"github.com/dev16mehta/ToolBelt-AI/internal/extract/mock"
	"github.com/dev16mehta/ToolBelt-AI/internal/model"
	"github.com/dev16mehta/ToolBelt-AI/pkg/currency"
	"github.com/dev16mehta/ToolBelt-AI/pkg/models"
)

var (
	bundlePath string
	inputPath  string
	useExample bool
	rate       string
)

var rootCmd = &cobra.Command{
	Use:   "predict",
	Short: "Estimate plumbing job cost and duration from a feature record",
	Long: `Loads a model bundle and prints the cost and time estimate for a job
record. The record is a JSON object of feature values; omitted features
take their defaults.`,
	RunE: runPredict,
}

func init() {
	rootCmd.Flags().StringVar(&bundlePath, "bundle", "models/plumbing_v1.0.0.json", "path to the model bundle")
	rootCmd.Flags().StringVar(&inputPath, "input", "", "path to a JSON job record (reads stdin if \"-\")")
	rootCmd.Flags().BoolVar(&useExample, "example", false, "predict a built-in example record")
	rootCmd.Flags().StringVar(&rate, "rate", "0.0056", "DZD to EUR exchange rate")
}

func runPredict(cmd *cobra.Command, args []string) error {
	record, err := loadRecord()
	if err != nil {
		return err
	}

	bundle, err := model.Load(bundlePath)
	if err != nil {
		return fmt.Errorf("load model bundle: %w", err)
	}

	converter, err := currency.NewConverter(rate)
	if err != nil {
		return fmt.Errorf("parse exchange rate: %w", err)
	}

	// No LLM or cache involved; records come from flags.
	svc, err := estimate.New(bundle, converter, mock.NewExtractor(), nil, 0, 0)
	if err != nil {
		return fmt.Errorf("build estimation service: %w", err)
	}

	est, err := svc.Predict(context.Background(), record)
	if err != nil {
		return fmt.Errorf("predict: %w", err)
	}

	out, err := json.MarshalIndent(est, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func loadRecord() (models.JobRecord, error) {
	if useExample {
		return models.JobRecord{
			"boilerSize":      "medium",
			"radiator":        float64(4),
			"radiatorType":    "GLOBAL_ISEO_350",
			"toilet":          float64(2),
			"toileType":       "Wall-Hung",
			"washbasin":       float64(2),
			"washbasinType":   "Pedestal",
			"waterHeater":     float64(1),
			"waterHeaterType": "GAS-11liters",
		}, nil
	}

	if inputPath == "" {
		// Empty record; every feature takes its default.
		return models.JobRecord{}, nil
	}

	var data []byte
	var err error
	if inputPath == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(inputPath)
	}
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}

	var record models.JobRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parse record: %w", err)
	}
	return record, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
