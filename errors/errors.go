package errors

import (
	"github.com/cockroachdb/errors"
)

// Sentinel errors. Wrap them with errors.Wrap or mark them through the
// builder so callers can check with errors.Is.
var (
	ErrSWCConversion      = errors.New("failed to convert TypeScript configuration to SWC configuration")
	ErrSWCOverride        = errors.New("failed to override SWC configuration")
	ErrNoTypeScriptConfig = errors.New("no TypeScript configuration provided")

	ErrReadTsConfig    = errors.New("failed to read TypeScript configuration file")
	ErrParseTsConfig   = errors.New("failed to parse TypeScript configuration")
	ErrExtendsNotFound = errors.New("extended TypeScript configuration not found")
	ErrExtendsCycle    = errors.New("circularity detected while resolving 'extends'")
	ErrResolveFiles    = errors.New("failed to resolve project files")

	ErrReadOverrides = errors.New("failed to read SWC overrides file")
	ErrWriteOutput   = errors.New("failed to write SWC configuration")
	ErrInvalidSWC    = errors.New("SWC configuration does not match the .swcrc schema")

	ErrInvalidSetFlag  = errors.New("invalid --set value")
	ErrInvalidFormat   = errors.New("invalid output format")
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrLoadSettings    = errors.New("failed to load tswig settings")
)
