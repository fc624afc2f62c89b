package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/juju/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tourism-recommender-server/config"
	"tourism-recommender-server/db"
	"tourism-recommender-server/externals"
	"tourism-recommender-server/handlers"
	"tourism-recommender-server/log"
)

var rootCommand = &cobra.Command{
	Use:   "tourism-recommender-server",
	Short: "Place recommendation and rating server.",
	Run: func(cmd *cobra.Command, args []string) {
		// setup logger
		debug, _ := cmd.PersistentFlags().GetBool("debug")
		log.SetLogger(cmd.PersistentFlags(), debug)
		defer func() {
			_ = log.Logger().Sync()
		}()

		// load config
		configPath, _ := cmd.PersistentFlags().GetString("config")
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Logger().Fatal("failed to load config", zap.Error(err))
		}
		if cmd.PersistentFlags().Changed("port") {
			cfg.Server.Port, _ = cmd.PersistentFlags().GetString("port")
		}

		// init db
		if _, err = db.InitDB(cfg); err != nil {
			log.Logger().Fatal("failed to initialize database", zap.Error(err))
		}
		defer db.CloseDBConnection()
		db.SetMaxRetries(cfg.Rating.MaxRetries)

		// initialize firebase
		externals.SetTestMode(cfg.IsTestMode())
		if !cfg.IsTestMode() {
			if _, err = externals.InitializeFirebase(); err != nil {
				log.Logger().Fatal("failed to initialize firebase", zap.Error(err))
			}
		}

		handlers.InitRecommender(cfg.Recommend)
		defer handlers.CloseRecommender()

		serve(SetupServer(cfg.Server.Port))
	},
}

// serve runs server until SIGINT or SIGTERM, then drains open requests
func serve(server *http.Server) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
		<-signals

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Logger().Error("failed to shutdown server", zap.Error(err))
		}
	}()

	log.Logger().Info("start server", zap.String("address", server.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Logger().Error("server stopped", zap.Error(err))
		return
	}
	<-done
	log.Logger().Info("server stopped")
}

func init() {
	rootCommand.PersistentFlags().String("port", "80", "port on which the server listens")
	rootCommand.PersistentFlags().StringP("config", "c", "", "configuration file path")
	rootCommand.PersistentFlags().Bool("debug", false, "use debug log mode")
	log.AddFlags(rootCommand.PersistentFlags())
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		log.Logger().Fatal("failed to execute", zap.Error(err))
	}
}
