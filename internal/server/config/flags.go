package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/certledger/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   session token HMAC secret key
//	-t int      session token validity, minutes
//	-n string   Sui fullnode JSON-RPC URL
//	-o string   certificate object type substring
//	-k int      chain lookup attempts
//	-b int      chain lookup base backoff, milliseconds
//	-x int      request timeout, seconds
//
// Flags not listed above are ignored so -c/-config can share the command line.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-t", "-n", "-o", "-k", "-b", "-x"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	sessionTokenValidity := fs.Int("t", int(config.SessionTokenValidityDuration.Minutes()), "session token validity (in minutes)")

	fs.StringVar(&config.ChainRPCURL, "n", config.ChainRPCURL, "chain JSON-RPC URL")
	fs.StringVar(&config.CertificateObjectType, "o", config.CertificateObjectType, "certificate object type")
	fs.IntVar(&config.ChainLookupAttempts, "k", config.ChainLookupAttempts, "chain lookup attempts")

	chainLookupBackoff := fs.Int("b", int(config.ChainLookupBackoff.Milliseconds()), "chain lookup backoff (in milliseconds)")
	requestTimeout := fs.Int("x", int(config.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	config.SessionTokenValidityDuration = time.Duration(*sessionTokenValidity) * time.Minute
	config.ChainLookupBackoff = time.Duration(*chainLookupBackoff) * time.Millisecond
	config.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	return nil
}
