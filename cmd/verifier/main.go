package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/veilcam/veilcam/internal/buildinfo"
	"github.com/veilcam/veilcam/internal/cli"
	"github.com/veilcam/veilcam/internal/config"
	"github.com/veilcam/veilcam/internal/cryptox"
	"github.com/veilcam/veilcam/internal/logging"
	"github.com/veilcam/veilcam/internal/storage"
	"github.com/veilcam/veilcam/internal/vault"
	"github.com/veilcam/veilcam/internal/vcli"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app, err := vcli.NewApp(cfg, openLocalVault(ctx, cfg), logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}

// openLocalVault tries to unlock the local vault so time-locked and
// wallet-locked payloads can be shown after unlocking. On a pure verifier
// device there is none, and the verifier runs without it.
func openLocalVault(ctx context.Context, cfg *config.Config) *vault.Service {
	if _, err := os.Stat(cfg.DatabaseDSN); err != nil {
		return nil
	}

	repos, err := storage.InitDatabase(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Printf("local database unusable, running without a vault: %v", err)
		return nil
	}

	initialized, err := repos.Keyring.Initialized(ctx)
	if err != nil || !initialized {
		return nil
	}

	passphrase, err := cli.GetPassword(os.Stdout)
	if err != nil {
		return nil
	}
	defer cryptox.WipeByteArray(passphrase)

	key, err := repos.Keyring.Unlock(ctx, passphrase)
	if err != nil {
		log.Printf("could not unlock the local vault: %v", err)
		return nil
	}
	return vault.NewService(repos.Vault, key)
}
