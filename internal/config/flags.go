package config

import (
	"flag"
	"os"
	"time"

	"github.com/hobbleabbas/bapu-gateway/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-n string   node JSON-RPC URL
//	-u string   node RPC user
//	-p string   node RPC password
//	-s string   access token HMAC secret key
//	-t int      node RPC timeout, seconds
//	-v int      access token validity, minutes
//	-e string   error log path
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Duration
// flags are accepted as integers and converted to time.Duration values.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-n", "-u", "-p", "-s", "-t", "-v", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Address, "a", config.Address, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.NodeURL, "n", config.NodeURL, "node JSON-RPC URL")
	fs.StringVar(&config.NodeUser, "u", config.NodeUser, "node RPC user")
	fs.StringVar(&config.NodePassword, "p", config.NodePassword, "node RPC password")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	nodeTimeout := fs.Int("t", int(config.NodeTimeout.Seconds()), "node RPC timeout (in seconds)")
	tokenValidity := fs.Int("v", int(config.AccessTokenValidity.Minutes()), "access token validity (in minutes)")

	fs.StringVar(&config.ErrorLogPath, "e", config.ErrorLogPath, "error log path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.NodeTimeout = time.Duration(*nodeTimeout) * time.Second
	config.AccessTokenValidity = time.Duration(*tokenValidity) * time.Minute
}
