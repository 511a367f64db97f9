package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tordrt/umlgen"
	"github.com/tordrt/umlgen/internal/interchange"
)

var (
	genInput         string
	genTargets       string
	genProject       string
	genPackage       string
	genFormat        string
	genBaseURL       string
	genMobileBaseURL string
	genOutputDir     string
	genOutputFile    string
	genZip           bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate artifacts from a diagram",
	Long: `Generate reads an editor snapshot or an interchange document (JSON or YAML) and writes the
artifacts of one or more targets. With several targets each target gets its own directory.`,
	Example: `  umlgen generate -i tienda.json -t schema,backend -d out
  umlgen generate -i tienda.uml.yaml -t all --zip -o tienda.zip
  cat tienda.json | umlgen generate -i - -t docs -o -`,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&genInput, "input", "i", "", "Diagram file, or - for stdin")
	f.StringVarP(&genTargets, "target", "t", "", "Targets (comma-separated) or all: "+strings.Join(umlgen.Targets(), ", "))
	f.StringVar(&genProject, "project", "", "Project name (default: diagram title)")
	f.StringVar(&genPackage, "package", "", "Java base package (default from config)")
	f.StringVarP(&genFormat, "format", "f", "", "markdown or text for docs, json or yaml for interchange-export")
	f.StringVar(&genBaseURL, "base-url", "", "Server URL written into the API collection (default from config)")
	f.StringVar(&genMobileBaseURL, "mobile-base-url", "", "Server URL the Flutter client calls")
	f.StringVarP(&genOutputDir, "output-dir", "d", "", "Output directory (default from config)")
	f.StringVarP(&genOutputFile, "output", "o", "", "Output file, or - for stdout")
	f.BoolVar(&genZip, "zip", false, "Write a zip archive instead of a plain stream (requires --output)")
	_ = generateCmd.MarkFlagRequired("input")
	_ = generateCmd.MarkFlagRequired("target")
}

// parseTargets expands "all" and removes duplicates.
func parseTargets(s string) []string {
	var out []string
	seen := map[string]bool{}
	for _, t := range parseList(s) {
		t = strings.ToLower(t)
		expanded := []string{t}
		if t == "all" {
			expanded = umlgen.Targets()
		}
		for _, e := range expanded {
			if !seen[e] {
				seen[e] = true
				out = append(out, e)
			}
		}
	}
	return out
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if genOutputDir != "" && genOutputFile != "" {
		return fmt.Errorf("cannot use both --output-dir and --output flags")
	}
	if genZip && genOutputFile == "" {
		return fmt.Errorf("--zip requires --output")
	}
	targets := parseTargets(genTargets)
	if len(targets) == 0 {
		return fmt.Errorf("at least one target must be specified")
	}

	data, err := readInput(genInput)
	if err != nil {
		return err
	}
	snap, warnings, err := umlgen.ParseDiagram(data, interchange.FormatFromPath(genInput))
	if err != nil {
		return err
	}

	opts := &umlgen.Options{
		ProjectName:       genProject,
		BasePackage:       orDefault(genPackage, cfg.Generation.BasePackage),
		DocsFormat:        genFormat,
		InterchangeFormat: genFormat,
		BaseURL:           orDefault(genBaseURL, cfg.Generation.BaseURL),
		MobileBaseURL:     genMobileBaseURL,
		Logger:            logger,
	}
	res := umlgen.GenerateAll(cmd.Context(), snap, targets, opts)
	printWarnings(os.Stderr, append(warnings, res.Warnings...))
	if !res.Success {
		return fmt.Errorf("generation failed: %s", res.Error)
	}

	out := &umlgen.OutputOptions{Zip: genZip}
	if genOutputFile != "" {
		w, closeFn, err := openOutput(genOutputFile)
		if err != nil {
			return err
		}
		defer closeFn()
		out.Writer = w
	} else {
		out.OutputDir = orDefault(genOutputDir, cfg.Generation.OutputDir)
	}
	if err := umlgen.WriteArtifacts(res.Bundle, out); err != nil {
		return fmt.Errorf("failed to write artifacts: %w", err)
	}

	fmt.Fprintln(os.Stderr, res.Message)
	return nil
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
