package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/certledger/internal/flagx"
	"github.com/dmitrijs2005/certledger/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "15s" and integer nanoseconds are accepted.
// Fields left out of the file keep their current value.
type JsonConfig struct {
	EndpointAddrHTTP             *string         `json:"endpoint_addr_http"`
	DatabaseDSN                  *string         `json:"database_dsn"`
	SecretKey                    *string         `json:"secret_key"`
	SessionTokenValidityDuration *timex.Duration `json:"session_token_validity_duration"`
	ChainRPCURL                  *string         `json:"chain_rpc_url"`
	CertificateObjectType        *string         `json:"certificate_object_type"`
	ChainLookupAttempts          *int            `json:"chain_lookup_attempts"`
	ChainLookupBackoff           *timex.Duration `json:"chain_lookup_backoff"`
	RequestTimeout               *timex.Duration `json:"request_timeout"`
}

// parseJson overlays values from the file named by -c/-config onto config.
// No flag means nothing to load. An unreadable file or invalid JSON is an error.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}

	setIf(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	setIf(&config.SecretKey, c.SecretKey)
	setIf(&config.ChainRPCURL, c.ChainRPCURL)
	setIf(&config.CertificateObjectType, c.CertificateObjectType)
	setIf(&config.ChainLookupAttempts, c.ChainLookupAttempts)
	if c.SessionTokenValidityDuration != nil {
		config.SessionTokenValidityDuration = c.SessionTokenValidityDuration.Duration
	}
	if c.ChainLookupBackoff != nil {
		config.ChainLookupBackoff = c.ChainLookupBackoff.Duration
	}
	if c.RequestTimeout != nil {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
	return nil
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
