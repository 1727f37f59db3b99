// Command atscore scores résumé files from the command line without a database.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"alfredoptarigan/ats-scorer/internal/config"
	"alfredoptarigan/ats-scorer/internal/services"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	flags := flag.NewFlagSet("atscore", flag.ContinueOnError)
	asJSON := flags.Bool("json", false, "print reports as JSON lines")
	criteriaFile := flags.String("criteria", "", "YAML file with keywords and sections")
	fromFormat := flags.Bool("file-type-from-format", false, "score file type from the declared format")
	clamp := flags.Bool("clamp", false, "clamp the total to [0, 100]")
	verbose := flags.Bool("v", false, "debug logging")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	config.SetupLogger("development", level)

	if flags.NArg() == 0 {
		fmt.Fprintln(flags.Output(), "usage: atscore [flags] FILE...")
		flags.PrintDefaults()
		return 2
	}

	scoring := config.Load().Scoring
	if *criteriaFile != "" {
		scoring.CriteriaFile = *criteriaFile
	}
	criteria, err := scoring.Criteria()
	if err != nil {
		log.Error().Err(err).Msg("❌ Failed to load scoring criteria")
		return 1
	}

	atsService := services.NewATSService(
		nil,
		nil,
		nil,
		services.NewTextExtractor(),
		services.NewScoreCalculator(criteria, services.ScoreOptions{
			FileTypeFromFormat: *fromFormat || scoring.FileTypeFromFormat,
			ClampTotal:         *clamp || scoring.ClampTotal,
		}),
	)

	ctx := context.Background()
	failCount := 0

	for _, path := range flags.Args() {
		result, err := atsService.ScoreFile(ctx, path)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("❌ Failed to score file")
			failCount++
			continue
		}

		if *asJSON {
			line, _ := json.Marshal(struct {
				Path   string               `json:"path"`
				Format string               `json:"format"`
				Report services.ScoreReport `json:"report"`
			}{path, string(result.Format), result.Report})
			fmt.Fprintln(out, string(line))
			continue
		}

		printReport(out, path, result.Report)
	}

	if failCount > 0 {
		return 1
	}
	return 0
}

func printReport(out io.Writer, path string, report services.ScoreReport) {
	fmt.Fprintf(out, "%s\n", path)
	fmt.Fprintln(out, strings.Repeat("=", len(path)))
	fmt.Fprintf(out, "  Keywords:    %6.2f  [%s]\n", report.KeywordScore, strings.Join(report.MatchedKeywords, ", "))
	fmt.Fprintf(out, "  Sections:    %6.2f  [%s]\n", report.SectionScore, strings.Join(report.MatchedSections, ", "))
	fmt.Fprintf(out, "  Formatting:  %6.2f  (%d tabs)\n", report.FormattingScore, report.TabCount)
	fmt.Fprintf(out, "  Bullets:     %6.2f\n", report.BulletScore)
	fmt.Fprintf(out, "  File type:   %6.2f\n", report.FileTypeScore)
	fmt.Fprintf(out, "  ATS score:   %6.2f\n", report.Total)
}
