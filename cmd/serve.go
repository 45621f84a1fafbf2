package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-scorer/internal/analysis"
	"github.com/spigell/resume-scorer/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analyzer over HTTP",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", server.DefaultAddr, "address to listen on")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, config, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("starting the resume-scorer", zap.String("version", version))

	rt, err := analysis.NewRuntime(ctx, config.Analysis(), logger)
	if err != nil {
		return err
	}

	srv := server.New(config.Server, analysis.New(rt, logger.Named("analysis")), logger.Named("server"))
	return srv.Run(ctx)
}
