package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/atikulmunna/gdkit/internal/logger"
	"github.com/atikulmunna/gdkit/internal/output"
	"github.com/atikulmunna/gdkit/internal/placeholder"
)

var placeholdersCmd = &cobra.Command{
	Use:   "placeholders",
	Short: "Write solid-colour placeholder pilot portraits",
	Long: `Write one 256x256 solid-colour PNG per pilot archetype into the output
directory, overwriting existing files. A YAML palette can replace the
default roster:

  pilots:
    - file: tank_commander_pilot.png
      name: Tank Commander
      color: [128, 128, 200]`,
	Args: cobra.NoArgs,
	RunE: runPlaceholders,
}

func init() {
	flags := placeholdersCmd.Flags()
	flags.StringP("out", "d", ".", "output directory")
	flags.Int("size", placeholder.DefaultSize, "portrait edge length in pixels")
	flags.String("palette", "", "YAML palette replacing the default pilots")

	_ = viper.BindPFlag("placeholders.out_dir", flags.Lookup("out"))
	_ = viper.BindPFlag("placeholders.size", flags.Lookup("size"))
	_ = viper.BindPFlag("placeholders.palette", flags.Lookup("palette"))

	rootCmd.AddCommand(placeholdersCmd)
}

func runPlaceholders(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	pilots, err := loadPilots(cmd)
	if err != nil {
		return err
	}

	gen := placeholder.New(placeholder.Config{
		OutDir: resolvePath(cmd, "out", "placeholders.out_dir"),
		Size:   viper.GetInt("placeholders.size"),
		Pilots: pilots,
	}, output.New(viper.GetString("output"), cmd.OutOrStdout()), logger.L())

	_, err = gen.Generate(ctx)
	return err
}
