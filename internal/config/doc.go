// Package config loads the session settings from the command line and the
// FREELETTERS_* environment variables.
//
// The only positional argument is "f" (any case), which enables forced
// removal for the whole session. Everything else comes from the environment:
//
//	FREELETTERS_LOG_LEVEL      debug | info | warn | error (default warn)
//	FREELETTERS_LOG_FORMAT     text | json (default text)
//	FREELETTERS_VOLUME_SOURCE  native | wmi (default native)
//	FREELETTERS_PROTECTED      extra protected letters, e.g. "D,Z"
//	FREELETTERS_ASSUME_YES     1 to skip the confirmation prompt
package config
