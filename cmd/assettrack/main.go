package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"p9e.in/assettrack/client/backend"
	"p9e.in/assettrack/client/config"
	"p9e.in/assettrack/client/services"
	"p9e.in/assettrack/client/session"
	"p9e.in/assettrack/client/state"
	"p9e.in/assettrack/pkg/apperr"
	"p9e.in/assettrack/pkg/logger"
)

var (
	// Global flags
	verbose bool

	env *clientEnv
)

// clientEnv is everything a command needs, built once per invocation.
type clientEnv struct {
	cfg *config.Config
	log *zap.Logger
	api *backend.Client

	auth        *services.AuthService
	assets      *services.AssetService
	inspections *services.InspectionService
	proposals   *services.ProposalService

	authStore       *state.AuthStore
	inspectionStore *state.InspectionStore
}

var rootCmd = &cobra.Command{
	Use:   "assettrack",
	Short: "Asset-Track - revisiones de grupos electrógenos",
	Long: `Asset-Track captures generator inspections at airports and renders
the signed "REVISIONES" report.

Run without arguments to start the interactive interface.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		env = e
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if env != nil {
			_ = env.log.Sync()
		}
	},
	RunE: runUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
}

func newEnv() (*clientEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o700); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	log, err := logger.NewFile(level, cfg.LogFile)
	if err != nil {
		return nil, err
	}

	api := backend.New(cfg.APIURL, cfg.APIKey, &http.Client{}, log.Named("backend"))
	e := &clientEnv{
		cfg:         cfg,
		log:         log,
		api:         api,
		auth:        services.NewAuthService(api),
		assets:      services.NewAssetService(api),
		inspections: services.NewInspectionService(api),
		proposals:   services.NewProposalService(api),
	}
	e.authStore = state.NewAuthStore(e.auth, session.NewFile(cfg.SessionFile), log.Named("auth"))
	e.inspectionStore = state.NewInspectionStore(e.assets, e.inspections, log.Named("inspection"))
	if err := e.authStore.CheckAuth(); err != nil {
		log.Warn("restore session", zap.Error(err))
	}
	return e, nil
}

// requireSession fails commands that need a signed-in user.
func requireSession() error {
	if !env.authStore.IsAuthenticated() {
		return apperr.New(apperr.KindNoSession, "cli", "run 'assettrack login' first")
	}
	return nil
}

// userMessage prints apperr kinds the way the interface shows them.
func userMessage(err error) string {
	var e *apperr.Error
	if errors.As(err, &e) {
		return apperr.UserMessage(err)
	}
	return err.Error()
}

// reportFailure prints err for the user. A rejected session is dropped
// from disk so the next run starts signed out.
func reportFailure(w io.Writer, err error) {
	if env != nil {
		env.log.Error("command failed", zap.Error(err))
	}
	fmt.Fprintln(w, "Error:", userMessage(err))
	if !errors.Is(err, apperr.ErrNoSession) {
		return
	}
	if env != nil && env.authStore.IsAuthenticated() {
		if cerr := env.authStore.EndSession(); cerr != nil {
			env.log.Warn("clear session", zap.Error(cerr))
		}
	}
	fmt.Fprintln(w, "Ejecute 'assettrack login' para iniciar sesión.")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportFailure(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
