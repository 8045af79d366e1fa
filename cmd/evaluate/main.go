package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fadilmartias/design-evaluator/internal/config"
	"github.com/fadilmartias/design-evaluator/internal/model"
	"github.com/fadilmartias/design-evaluator/internal/report"
	"github.com/fadilmartias/design-evaluator/internal/service"
	"github.com/fadilmartias/design-evaluator/internal/workflow"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "evaluate <plan-set.pdf>",
	Short:        "Evaluate a plan set and print the design quality report",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runEvaluate,
}

func init() {
	rootCmd.Flags().String("backend", "", "evaluation backend base URL (default: local mock)")
	rootCmd.Flags().Duration("delay", 0, "simulated processing delay for the local mock (default from EVALUATOR_DELAY)")
	rootCmd.Flags().Duration("timeout", 2*time.Minute, "give up after this long")
	rootCmd.Flags().StringP("output", "o", "text", "output format: text or json")
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	backend, _ := cmd.Flags().GetString("backend")
	delay, _ := cmd.Flags().GetDuration("delay")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	output, _ := cmd.Flags().GetString("output")
	if output != "text" && output != "json" {
		return fmt.Errorf("unknown output format %q", output)
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	name := filepath.Base(path)
	if err := service.ValidateUpload(name, int64(len(data)), 0); err != nil {
		return err
	}

	cfg := *config.LoadEvaluatorConfig()
	if backend != "" {
		cfg.Mode = config.EvaluatorModeRemote
		cfg.BackendURL = backend
	}
	if cmd.Flags().Changed("delay") {
		cfg.Delay = delay
	}
	evaluator, err := service.NewEvaluator(&cfg)
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	ctrl, err := workflow.NewController(evaluator, workflow.NotifierFunc(func(n workflow.Notification) {
		fmt.Fprintf(stderr, "%s: %s\n", n.Title, n.Description)
	}))
	if err != nil {
		return err
	}
	defer ctrl.Close()

	if err := ctrl.Select(model.UploadedFile{
		Name:       name,
		Size:       int64(len(data)),
		Type:       "application/pdf",
		Data:       data,
		SelectedAt: time.Now(),
	}); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	fmt.Fprintf(stderr, "Analyzing %s...\n", name)
	if err := ctrl.Evaluate(); err != nil {
		return err
	}
	if err := ctrl.Wait(ctx); err != nil {
		return fmt.Errorf("evaluation did not finish: %w", err)
	}

	snap := ctrl.Snapshot()
	if snap.State != workflow.StateCompleted || snap.Result == nil {
		return fmt.Errorf("evaluation failed: %s", snap.LastError)
	}

	out := cmd.OutOrStdout()
	if output == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap.Result)
	}
	fmt.Fprintln(out, report.RenderTerminal(report.Build(snap.Result)))
	return nil
}
