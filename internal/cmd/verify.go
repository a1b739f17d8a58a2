package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/atikulmunna/gdkit/internal/pngenc"
)

var (
	styleOK  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleBad = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

var verifyCmd = &cobra.Command{
	Use:   "verify <file.png>...",
	Short: "Check placeholder PNGs decode and report their colour",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := 0

	for _, path := range args {
		line, err := describePNG(path)
		if err != nil {
			failed++
			fmt.Fprintln(out, styleBad.Render(fmt.Sprintf("✗ %s: %v", path, err)))
			continue
		}
		fmt.Fprintln(out, styleOK.Render("✓ "+line))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed verification", failed, len(args))
	}
	return nil
}

func describePNG(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	img, err := pngenc.Decode(data)
	if err != nil {
		return "", err
	}

	desc := fmt.Sprintf("%s: %dx%d", path, img.Header.Width, img.Header.Height)
	if r, g, b, ok := img.Solid(); ok {
		return desc + fmt.Sprintf(" solid rgb(%d, %d, %d)", r, g, b), nil
	}
	return desc + " mixed colours", nil
}
