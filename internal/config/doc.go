// Package config loads kulku's TOML configuration.
//
// # Discovery
//
// Load resolves the file in this order:
//
//  1. An explicit path (the --config flag)
//  2. ~/.config/kulku/config.toml
//  3. Built-in defaults when the file does not exist
//
// Empty strings and non-positive numbers in the file keep their defaults.
//
// # TOML Format
//
//	api_key_file = "~/.config/kulku/key"
//	poll_seconds = 60
//	search_cooldown_ms = 1000
//	frame_ms = 16
//	search_size = 10
//	itineraries = 5
//	requests_per_second = 5
//	log_file = "~/.local/state/kulku/kulku.log"
//	log_level = "info"
//	theme = "Nightfox"
//
// geocoding_url and routing_url point the client at another Digitransit
// deployment. api_key holds the subscription key inline; api_key_file names a
// file whose trimmed content is the key and takes precedence over api_key.
// The DIGITRANSIT_SUBSCRIPTION_KEY environment variable overrides both.
//
// # Errors
//
// Load fails when the home directory cannot be resolved, the file cannot be
// read, the TOML does not parse, the key file is unreadable or empty, or
// log_level is not one of debug, info, warn or error. A missing config file
// is not an error.
package config
