// Package cli implements the creator-side REPL: capturing capsules, listing
// the gallery, revising disclosures and managing offers.
package cli

import (
	"bufio"
	"context"
	"log"
	"os"

	"github.com/veilcam/veilcam/internal/castore"
	"github.com/veilcam/veilcam/internal/config"
	"github.com/veilcam/veilcam/internal/cryptox"
	"github.com/veilcam/veilcam/internal/logging"
	"github.com/veilcam/veilcam/internal/offers"
	"github.com/veilcam/veilcam/internal/services"
	"github.com/veilcam/veilcam/internal/storage"
	"github.com/veilcam/veilcam/internal/vault"
	"github.com/veilcam/veilcam/internal/zkbind"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repos  *storage.Repositories
	prover zkbind.Provider
	store  castore.Store

	offerService *offers.Service

	// set after unlock
	masterKey    []byte
	vaultService *vault.Service
	capture      *services.CaptureService
	revision     *services.RevisionService

	reader *bufio.Reader
}

func NewApp(cfg *config.Config, logger logging.Logger) (*App, error) {
	ctx := context.Background()

	repos, err := storage.InitDatabase(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	prover, err := zkbind.New(zkbind.ProviderGnark)
	if err != nil {
		return nil, err
	}

	return &App{
		config:       cfg,
		logger:       logger,
		repos:        repos,
		prover:       prover,
		store:        pickStore(cfg, logger),
		offerService: offers.NewService(repos.Offers),
		reader:       bufio.NewReader(os.Stdin),
	}, nil
}

// pickStore selects the configured media store: the pinning provider when a
// token is configured, the S3 bucket otherwise, or none.
func pickStore(cfg *config.Config, logger logging.Logger) castore.Store {
	if cfg.PinataJWT != "" {
		return castore.NewPinataStore(cfg.PinataAPIURL, cfg.PinataGatewayURL, cfg.PinataJWT, logger)
	}
	if cfg.S3Bucket != "" {
		return castore.NewS3Store(castore.S3Options{
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			Bucket:       cfg.S3Bucket,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
		})
	}
	return nil
}

func (a *App) isUnlocked() bool {
	return a.masterKey != nil
}

// unlock derives the master key from the passphrase, initializing the keyring
// on first use, and wires the key-dependent services.
func (a *App) unlock(ctx context.Context) {
	passphrase, err := GetPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	defer cryptox.WipeByteArray(passphrase)

	initialized, err := a.repos.Keyring.Initialized(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	var key []byte
	if initialized {
		key, err = a.repos.Keyring.Unlock(ctx, passphrase)
	} else {
		log.Println("First run: setting up the vault passphrase")
		key, err = a.repos.Keyring.Init(ctx, passphrase)
	}
	if err != nil {
		log.Printf("unlock unsuccessful: %s", err.Error())
		return
	}

	a.masterKey = key
	a.vaultService = vault.NewService(a.repos.Vault, key)
	assembler := services.NewAssemblerService(a.vaultService, a.logger)
	a.capture = services.NewCaptureService(a.prover, assembler, a.repos.Collection, a.store, a.logger)
	a.revision = services.NewRevisionService(a.vaultService, a.repos.Collection, a.logger)
	log.Println("Vault unlocked")
}

func (a *App) lock() {
	cryptox.WipeByteArray(a.masterKey)
	a.masterKey = nil
	a.vaultService = nil
	a.capture = nil
	a.revision = nil
	log.Println("Vault locked")
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.repos.DB != nil {
			_ = a.repos.DB.Close()
		}
	}()
	a.Root(ctx)
}
