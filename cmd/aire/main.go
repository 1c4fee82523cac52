// AIRE — Deal Scoring & Financial Projection Engine
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/airevector/aire/api"
	"github.com/airevector/aire/internal/config"
	"github.com/airevector/aire/internal/prefill"
	"github.com/airevector/aire/internal/strategy"
	"github.com/airevector/aire/internal/underwrite"
	"github.com/airevector/aire/pkg/models"
	"github.com/airevector/aire/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "aire",
	Short: "AIRE — Deal Scoring & Financial Projection Engine",
	Long: `AIRE (Adaptive Investment Real Estate engine)
Scores real-estate deals from partial inputs: normalized financial
ratios, a renormalized composite score with letter grade and
confidence, risk flags with a kill switch, multi-year levered
cash-flow projections with IRR/NPV, and rent/rate sensitivity grids.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(sensitivityCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(serveCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("AIRE %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Analyze Command ---

var analyzeCmd = &cobra.Command{
	Use:   "analyze [deal.json]",
	Short: "Score a deal from a JSON file",
	Long: `Score a deal from a JSON request file.

The file holds a scoring request: a "deal" object plus optional
"included" modules, "rate_env", "projection", and "sensitivity"
sections. Missing request fields fall back to config defaults.

Examples:
  aire analyze deal.json
  aire analyze deal.json --template "LTR (Long-Term Rental)"
  aire analyze deal.json --projection --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := loadRequest(args[0])
		if err != nil {
			return err
		}

		if sugPath, _ := cmd.Flags().GetString("suggestions"); sugPath != "" {
			suggestions, err := loadSuggestions(sugPath)
			if err != nil {
				return err
			}
			var notes []string
			req.Deal, notes = prefill.Merge(req.Deal, suggestions)
			for _, n := range notes {
				fmt.Println(n)
			}
		}

		if tplName, _ := cmd.Flags().GetString("template"); tplName != "" {
			tpl, err := strategy.Get(tplName)
			if err != nil {
				return err
			}
			req = tpl.Apply(req)
		}

		if withProj, _ := cmd.Flags().GetBool("projection"); withProj && req.Projection == nil {
			proj := cfg.Engine.ProjectionParams()
			req.Projection = &proj
		}

		resp, err := underwrite.Analyze(req)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(resp)
		}
		printReport(req.Deal, resp)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().String("template", "", "strategy template to prefill missing fields")
	analyzeCmd.Flags().String("suggestions", "", "JSON file of provider suggestions to merge into blank fields")
	analyzeCmd.Flags().Bool("projection", false, "include a cash-flow projection with config defaults")
	analyzeCmd.Flags().Bool("json", false, "emit the raw JSON response")
}

// --- Sensitivity Command ---

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity [deal.json]",
	Short: "Run rent/rate sensitivity grids for a deal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := loadRequest(args[0])
		if err != nil {
			return err
		}

		if req.Sensitivity == nil {
			sp := cfg.Engine.SensitivityParams()
			req.Sensitivity = &sp
		}

		resp, err := underwrite.Analyze(req)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(resp.Sensitivity)
		}
		printGrid(resp.Sensitivity)
		return nil
	},
}

func init() {
	sensitivityCmd.Flags().Bool("json", false, "emit the raw JSON grids")
}

// --- Templates Command ---

var templatesCmd = &cobra.Command{
	Use:   "templates [name]",
	Short: "List strategy templates or show one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			tpl, err := strategy.Get(args[0])
			if err != nil {
				return err
			}
			return printJSON(tpl)
		}

		fmt.Println("Built-in strategy templates:")
		for _, name := range strategy.Names() {
			tpl, _ := strategy.Get(name)
			fmt.Printf("  %-26s target %s (%.0f), %d modules\n",
				name, tpl.Targets.Grade, tpl.Targets.Score, len(tpl.Included))
		}
		return nil
	},
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		fmt.Printf("Starting AIRE API server on %s\n", addr)
		return api.NewServer(cfg).ListenAndServe(addr)
	},
}

// --- Helpers ---

// loadRequest reads a scoring request from a JSON file and fills the
// included-module set and rate environment from config defaults.
func loadRequest(path string) (models.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Request{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var req models.Request
	if err := json.Unmarshal(data, &req); err != nil {
		return models.Request{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if len(req.Included) == 0 {
		req.Included = cfg.Engine.ModuleSet()
	}
	if req.RateEnv == "" {
		req.RateEnv = cfg.Engine.RateEnvironment()
	}
	return req, nil
}

// loadSuggestions reads provider suggestions from a JSON file.
func loadSuggestions(path string) ([]prefill.Suggestion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var suggestions []prefill.Suggestion
	if err := json.Unmarshal(data, &suggestions); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return suggestions, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printReport renders the human-readable underwriting report.
func printReport(deal models.Deal, resp *models.Response) {
	line := strings.Repeat("═", 52)

	fmt.Println(line)
	fmt.Printf("  %s — %s\n", deal.Address, deal.PropertyType)
	fmt.Println(line)
	fmt.Printf("  Grade:      %s (%s)\n", resp.Grade, resp.Verdict)
	fmt.Printf("  Score:      %.1f / 100\n", resp.Score)
	fmt.Printf("  Confidence: %s\n", utils.FormatPercent(resp.Confidence, 0))
	if resp.KillSwitch {
		fmt.Println("  Kill switch: TRIPPED")
	}
	if resp.Penalty > 0 {
		fmt.Printf("  Penalty:    %s\n", utils.FormatPercent(resp.Penalty, 0))
	}
	fmt.Println()

	fmt.Println("  Numbers:")
	fmt.Printf("    Price:          %s\n", utils.FormatMoneyPtr(deal.Price))
	fmt.Printf("    NOI (year):     %s\n", utils.FormatMoneyPtr(resp.Numbers.NOIYear))
	fmt.Printf("    Cap rate:       %s\n", utils.FormatPercentPtr(resp.Numbers.CapRate, 2))
	fmt.Printf("    Loan payment:   %s/mo\n", utils.FormatMoneyPtr(resp.Numbers.LoanPayment))
	fmt.Printf("    Cash flow:      %s/mo\n", utils.FormatMoneyPtr(resp.Numbers.CashFlowMonth))
	fmt.Printf("    Cash-on-cash:   %s\n", utils.FormatPercentPtr(resp.Numbers.CoCReturn, 2))
	fmt.Printf("    Stress DSCR:    %s\n", utils.FormatRatioPtr(resp.Numbers.DSCRStress))
	fmt.Println()

	if resp.PriceChange != nil {
		fmt.Printf("  Since last sale: %s (%s)\n",
			utils.FormatMoney(resp.PriceChange.Abs),
			utils.FormatPercent(resp.PriceChange.Pct, 1))
		fmt.Println()
	}

	fmt.Println("  Strengths:")
	for _, s := range resp.Strengths {
		fmt.Printf("    + %s\n", s)
	}
	fmt.Println("  Risks:")
	for _, r := range resp.Risks {
		fmt.Printf("    - %s\n", r)
	}

	if resp.Projection != nil && len(resp.Projection.Cashflows) > 0 {
		fmt.Println()
		fmt.Println("  Projection:")
		fmt.Printf("    Exit value:   %s\n", utils.FormatMoneyPtr(resp.Projection.ExitValue))
		fmt.Printf("    Net sale:     %s\n", utils.FormatMoneyPtr(resp.Projection.NetSale))
		if resp.Projection.IRR != nil {
			fmt.Printf("    IRR:          %s\n", utils.FormatPercent(*resp.Projection.IRR, 2))
		} else {
			fmt.Printf("    IRR:          %s\n", utils.Absent)
		}
		fmt.Printf("    NPV:          %s\n", utils.FormatMoneyPtr(resp.Projection.NPV))
	}
	fmt.Println(line)
}

// printGrid renders the sensitivity score surface as a text table,
// rent shocks down the rows and rate shocks across the columns.
func printGrid(grid *models.SensitivityResult) {
	if grid == nil {
		fmt.Println("no sensitivity grids")
		return
	}

	fmt.Printf("%10s", "rent \\ rate")
	for _, label := range grid.RateLabels {
		fmt.Printf("  %10s", strings.TrimPrefix(label, "rate_"))
	}
	fmt.Println()

	for i, rs := range grid.RentShocks {
		fmt.Printf("%10s", utils.FormatPercent(rs, 0))
		for j := range grid.RateShocks {
			fmt.Printf("  %10.1f", grid.Scores[i][j])
		}
		fmt.Println()
	}
}
