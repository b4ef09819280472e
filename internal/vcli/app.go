// Package vcli implements the verifier-side REPL: loading a capsule from a
// file, raw JSON or URL, inspecting its claims, re-verifying the proof and
// driving the time-lock and wallet-lock state machines.
package vcli

import (
	"bufio"
	"context"
	"log"
	"os"

	"github.com/veilcam/veilcam/internal/capsule"
	"github.com/veilcam/veilcam/internal/config"
	"github.com/veilcam/veilcam/internal/logging"
	"github.com/veilcam/veilcam/internal/timesource"
	"github.com/veilcam/veilcam/internal/vault"
	"github.com/veilcam/veilcam/internal/verifier"
	"github.com/veilcam/veilcam/internal/zkbind"
)

type App struct {
	config *config.Config
	logger logging.Logger

	parser     *verifier.Parser
	checker    *verifier.ProofChecker
	timeLock   *verifier.TimeLockService
	walletLock *verifier.WalletLockService

	// current holds the most recently loaded capsule.
	current *capsule.Capsule

	reader *bufio.Reader
}

// NewApp wires the verifier. vaultService may be nil: on a device that never
// created the capsule there is no vault, and the locks expose "no data
// available" after unlocking.
func NewApp(cfg *config.Config, vaultService *vault.Service, logger logging.Logger) (*App, error) {
	prover, err := zkbind.New(zkbind.ProviderGnark)
	if err != nil {
		return nil, err
	}

	providers := make([]timesource.Provider, 0, len(cfg.TimeSourceURLs))
	for _, url := range cfg.TimeSourceURLs {
		providers = append(providers, timesource.NewHTTPProvider(url, url))
	}
	clock := timesource.NewChain(logger, providers...)

	return &App{
		config:     cfg,
		logger:     logger,
		parser:     verifier.NewParser(),
		checker:    verifier.NewProofChecker(prover),
		timeLock:   verifier.NewTimeLockService(clock, vaultService, cfg.LockPollInterval),
		walletLock: verifier.NewWalletLockService(vaultService),
		reader:     bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) hasCapsule() bool {
	if a.current == nil {
		log.Println("No capsule loaded; run 'load' first")
		return false
	}
	return true
}
