package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/atikulmunna/gdkit/internal/logger"
	"github.com/atikulmunna/gdkit/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Preview placeholder portraits in the browser",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		pilots, err := loadPilots(cmd)
		if err != nil {
			return err
		}

		port := viper.GetString("serve.port")
		srv := server.New(server.Options{
			Pilots: pilots,
			Size:   viper.GetInt("placeholders.size"),
			Log:    logger.L(),
		}, port)

		fmt.Fprintf(cmd.ErrOrStderr(), "previewing portraits on http://localhost:%s\n", port)
		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().StringP("port", "p", "8080", "listen port")
	serveCmd.Flags().String("palette", "", "YAML palette replacing the default pilots")
	_ = viper.BindPFlag("serve.port", serveCmd.Flags().Lookup("port"))

	rootCmd.AddCommand(serveCmd)
}
