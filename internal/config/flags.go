package config

import (
	"flag"
	"os"
	"time"

	"github.com/veilcam/veilcam/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   sqlite database file
//	-g string   IPFS gateway base URL
//	-p int      lock poll interval in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-g", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "sqlite database file")
	fs.StringVar(&cfg.PinataGatewayURL, "g", cfg.PinataGatewayURL, "IPFS gateway base URL")
	pollSeconds := fs.Int("p", int(cfg.LockPollInterval.Seconds()), "lock poll interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.LockPollInterval = time.Duration(*pollSeconds) * time.Second
}
