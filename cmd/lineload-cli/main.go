// Command lineload-cli runs the allocation optimizer over an input
// workbook, or generates a blank input template.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"lineload/internal/adapters/xlsx"
	"lineload/internal/core/scenario"
	"lineload/internal/platform/logger"
)

func main() {
	_ = godotenv.Load()

	var (
		generateTemplate = flag.Bool("generate-template", false, "write a blank input template and exit")
		inputPath        = flag.String("input", "", "input workbook path")
		outputPath       = flag.String("output", "result.xlsx", "output workbook path")
		scalesFlag       = flag.String("scales", "", "comma-separated capacity scales, e.g. 1.0,0.9,0.8 (default: workbook settings, then 1.0)")
		timeLimit        = flag.Int("time-limit", 0, "per-scenario solve budget in seconds (default: workbook settings, then 300)")
		jsonOut          = flag.Bool("json", false, "print the comparison summary as JSON to stdout")
	)
	flag.Parse()

	l := logger.Named("cli")

	if *generateTemplate {
		path := *outputPath
		if path == "result.xlsx" {
			path = "template.xlsx"
		}
		if err := xlsx.WriteTemplate(path); err != nil {
			l.Fatal().Err(err).Msg("template generation failed")
		}
		l.Info().Str("path", path).Msg("template written")
		return
	}

	if *inputPath == "" {
		l.Fatal().Msg("-input is required (or use -generate-template)")
	}

	in, err := xlsx.ReadInput(*inputPath)
	if err != nil {
		l.Fatal().Err(err).Str("path", *inputPath).Msg("input load failed")
	}
	l.Info().Int("parts", len(in.Parts)).Msg("input loaded")

	scales := in.Scales
	if *scalesFlag != "" {
		scales = nil
		for _, part := range strings.Split(*scalesFlag, ",") {
			s, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				l.Fatal().Str("scales", *scalesFlag).Msg("unparseable -scales value")
			}
			scales = append(scales, s)
		}
	}
	if len(scales) == 0 {
		scales = []float64{1.0}
	}

	budget := in.TimeLimitSeconds
	if *timeLimit > 0 {
		budget = *timeLimit
	}
	if budget <= 0 {
		budget = 300
	}

	scenarios, err := scenario.FromScales(in.Capacity, scales)
	if err != nil {
		l.Fatal().Err(err).Msg("scenario setup failed")
	}

	outcomes, err := scenario.Run(context.Background(), in.Parts, scenarios, scenario.Options{
		Timeout: time.Duration(budget) * time.Second,
	})
	if err != nil {
		l.Fatal().Err(err).Msg("allocation failed")
	}

	for _, o := range outcomes {
		if o.Err != nil {
			l.Warn().Str("scenario", o.Scenario.Label).Err(o.Err).Msg("scenario failed")
			continue
		}
		l.Info().
			Str("scenario", o.Scenario.Label).
			Float64("total_unmet", o.Result.TotalUnmet()).
			Dur("solve_time", o.Result.SolveTime).
			Msg("scenario solved")
	}

	if err := xlsx.WriteResult(*outputPath, in.Parts, outcomes); err != nil {
		l.Fatal().Err(err).Str("path", *outputPath).Msg("result export failed")
	}
	l.Info().Str("path", *outputPath).Msg("result written")

	if *jsonOut {
		c := scenario.Compare(in.Parts, outcomes)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(c); err != nil {
			l.Fatal().Err(err).Msg("summary encode failed")
		}
	}
}
