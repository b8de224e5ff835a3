package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/scigate/scigate/internal/analyzer"
	"github.com/scigate/scigate/internal/cache"
	"github.com/scigate/scigate/internal/model"
)

var (
	checkProvider string
	checkModel    string
	checkAPIKey   string
	checkTimeout  time.Duration
	checkJSON     string
	checkNoCache  bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Analyze a paper's originality without publishing",
	Long: `Check sends the paper text to the configured analysis provider and
prints the originality verdict: the overall score, the status label, and any
sections flagged as similar to existing content.

The verdict is advisory here; the accept/reject decision only happens during
publish, against the similarity threshold.

Example:
  scigate check paper.txt
  scigate check paper.txt --provider gemini --json verdict.json`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkProvider, "provider", "", "analysis provider (gemini, openai)")
	checkCmd.Flags().StringVar(&checkModel, "model", "", "analysis model name")
	checkCmd.Flags().StringVar(&checkAPIKey, "api-key", "", "analysis API key (overrides config and environment)")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "overall check timeout")
	checkCmd.Flags().StringVar(&checkJSON, "json", "", "write the verdict to a JSON file")
	checkCmd.Flags().BoolVar(&checkNoCache, "no-cache", false, "disable the verdict cache (force fresh analysis)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	body, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read paper body: %w", err)
	}

	sub := model.Submission{BodyText: string(body)}
	if err := sub.AnalyzableBody(); err != nil {
		return err
	}

	cfg := buildToolConfig()
	if checkProvider != "" {
		cfg.Analyzer.Provider = checkProvider
	}
	if checkModel != "" {
		cfg.Analyzer.Model = checkModel
	}
	resolveAnalyzerCredential(cfg, checkAPIKey)

	if cfg.Analyzer.Provider == "" {
		return fmt.Errorf("no analysis provider configured (use --provider or set analyzer.provider in the config)")
	}

	provider, err := analyzer.NewProvider(analyzer.ConfigFromModel(cfg.Analyzer))
	if err != nil {
		return err
	}

	var verdicts *cache.VerdictStore
	if cfg.Cache.Enabled && !checkNoCache {
		dir := cfg.Cache.Dir
		if dir == "" {
			if home, err := os.UserHomeDir(); err == nil {
				dir = filepath.Join(home, ".scigate", "cache")
			}
		}
		layered := cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
		verdicts = cache.NewVerdictStore(layered, cfg.Cache.DiskTTL)
	}

	var verdict *model.Verdict
	if verdicts != nil {
		if v, found := verdicts.Get(sub.BodyText); found {
			if verbose {
				fmt.Fprintln(os.Stderr, "Serving verdict from cache")
			}
			verdict = v
		}
	}

	if verdict == nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "Analyzing %s with %s...\n", file, provider.Name())
		}
		verdict, err = provider.Analyze(ctx, sub.BodyText)
		if err != nil {
			return err
		}
		if verdicts != nil {
			_ = verdicts.Put(sub.BodyText, verdict)
		}
	}

	renderVerdict(verdict)

	if checkJSON != "" {
		data, err := json.MarshalIndent(verdict, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal verdict: %w", err)
		}
		if err := os.WriteFile(checkJSON, data, 0644); err != nil {
			return fmt.Errorf("write verdict: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", checkJSON)
		}
	}

	return nil
}

func renderVerdict(v *model.Verdict) {
	fmt.Printf("Originality score: %.1f/100 (%s)\n", v.OriginalityScore, v.Status)
	fmt.Printf("Similarity:        %.1f%%\n", v.Similarity())

	if len(v.FlaggedSections) > 0 {
		fmt.Println("\nFlagged content:")
		for _, s := range v.FlaggedSections {
			fmt.Printf("  - %.1f%% similar: %q\n", s.Similarity, truncate(s.Text, 120))
			if s.Source != "" {
				fmt.Printf("    possible source: %s\n", s.Source)
			}
		}
	}
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	// Truncate on runes, not bytes: flagged text is arbitrary UTF-8.
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
