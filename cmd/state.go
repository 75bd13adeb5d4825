package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/uistate/internal/model"
	"github.com/mj1618/uistate/internal/output"
	"github.com/mj1618/uistate/internal/state"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the numbered UI state, optionally with an annotated screenshot",
	Long: `Fetch the hierarchy once, classify every element and print the numbered state.

With --vision a fresh screenshot is annotated: every interactive element is
outlined and labelled with the number printed in the "Interactive Elements"
list. The PNG is written to --output.

Examples:
  uistate state --platform android
  uistate state --platform ios --vision --output state.png
  uistate state --platform android --dump window.xml --window-size 1080x1920
  uistate state --platform chrome --browser-url http://127.0.0.1:9222 --format json`,
	RunE: runState,
}

func init() {
	rootCmd.AddCommand(stateCmd)
	stateCmd.Flags().Bool("vision", false, "Annotate a screenshot with the interactive element numbers")
	stateCmd.Flags().StringP("output", "o", "state.png", "Where to write the annotated PNG (with --vision)")
	stateCmd.Flags().String("save", "", "Also save the snapshot as JSON for a later diff")
	stateCmd.Flags().Float64("scale", 0, "Resize the captured screenshot by this factor before annotating (0 keeps it)")
}

func runState(cmd *cobra.Command, args []string) error {
	vision, _ := cmd.Flags().GetBool("vision")
	outPath, _ := cmd.Flags().GetString("output")
	scale, _ := cmd.Flags().GetFloat64("scale")
	savePath, _ := cmd.Flags().GetString("save")
	if scale < 0 {
		return fmt.Errorf("--scale must not be negative")
	}

	d, cleanup, err := openDriver()
	if err != nil {
		return err
	}
	defer cleanup()

	engine, err := state.NewEngine(engineOptions(d.Platform(), scale), logger)
	if err != nil {
		return err
	}
	st, err := engine.GetState(cmd.Context(), d, vision)
	if err != nil {
		return err
	}

	if savePath != "" {
		if err := model.SaveSnapshot(savePath, st.Tree); err != nil {
			return err
		}
	}

	result := output.NewStateResult(st.Tree)
	if vision {
		switch {
		case st.ImageErr != nil:
			fmt.Fprintf(cmd.ErrOrStderr(), "Screenshot unavailable: %v\n", st.ImageErr)
		case st.Image != nil:
			if err := os.WriteFile(outPath, st.Image.PNG, 0o644); err != nil {
				return fmt.Errorf("write screenshot: %w", err)
			}
			result.Image = outPath
		}
	}
	return printResult(cmd, result)
}
