// cmd/analyst-manager/analyze.go
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"startup-analyst/internal/models"

	"github.com/spf13/cobra"
)

var (
	analyzeCompany  string
	analyzeRequest  string
	analyzeDuration float64
	analyzeMemoOnly bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "analyze [document...]",
		Short: "Run one analysis locally and print the stored result",
		Long: "Runs the pipeline once. Documents are read from the given paths, or the whole " +
			"request is read from --request as JSON.",
		RunE: runAnalyze,
	}
	cmd.Flags().StringVar(&analyzeCompany, "company", "", "Company name")
	cmd.Flags().StringVar(&analyzeRequest, "request", "", "Path to an analysis request JSON file")
	cmd.Flags().Float64Var(&analyzeDuration, "voice-duration", 0, "Length in seconds of the founder voice recording, if any")
	cmd.Flags().BoolVar(&analyzeMemoOnly, "memo", false, "Print only the investment memo")

	rootCmd.AddCommand(cmd)
}

func buildRequest(paths []string) (*models.AnalysisRequest, error) {
	req := &models.AnalysisRequest{}
	if analyzeRequest != "" {
		data, err := os.ReadFile(analyzeRequest)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, req); err != nil {
			return nil, fmt.Errorf("parse %s: %w", analyzeRequest, err)
		}
	}

	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		req.Documents = append(req.Documents, models.Document{Name: filepath.Base(p), Content: content})
	}
	if analyzeCompany != "" {
		req.CompanyName = analyzeCompany
	}
	if analyzeDuration > 0 {
		req.VoiceData = &models.VoiceData{Duration: analyzeDuration}
	}
	return req, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	req, err := buildRequest(args)
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	result, err := a.orch.AnalyzeStartup(cmd.Context(), req)
	if err != nil {
		return err
	}

	var out interface{} = result
	if analyzeMemoOnly {
		out = result.Memo
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}
