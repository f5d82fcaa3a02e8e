// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
)

// Options holds the configuration values for the application.
type Options struct {
	// ServerURL is the base URL of the tender platform API.
	ServerURL string

	// TokenFile is the path of the file holding the session token.
	TokenFile string

	// LogLevel sets the minimum level for structured logging.
	LogLevel string

	// Address defines the stub server's listening address (ip:port).
	Address string

	// Secret is the HMAC secret the stub server signs tokens with.
	Secret string

	// Config is the path to the Config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.ServerURL, "url", "http://localhost:5000/api", "platform API base URL")
	flag.StringVar(&options.TokenFile, "token-file", ".tenderdesk_token", "path to the session token file")
	flag.StringVar(&options.LogLevel, "log-level", "error", "log level: debug|info|warn|error")
	flag.StringVar(&options.Address, "a", "localhost:5000", "run stub server on ip:port")
	flag.StringVar(&options.Secret, "secret", "tenderdesk-dev-secret", "stub server token signing secret")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverURL := os.Getenv("SERVER_URL"); serverURL != "" {
		options.ServerURL = serverURL
	}
	if tokenFile := os.Getenv("TOKEN_FILE"); tokenFile != "" {
		options.TokenFile = tokenFile
	}
	if addr := os.Getenv("SERVER_ADDRESS"); addr != "" {
		options.Address = addr
	}
	if secret := os.Getenv("STUB_SECRET"); secret != "" {
		options.Secret = secret
	}

	return options
}
