// Package qcamapctl runs the category maintenance operations of
// [github.com/qcatools/qcamap.go] from the command line.
package qcamapctl

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/qcatools/qcamap.go/pkg/connection"
	"github.com/qcatools/qcamap.go/pkg/constants"
)

// Commands
const (
	CommandMerge     = "merge"
	CommandDuplicate = "duplicate"
	CommandSort      = "sort"
	CommandDump      = "dump"
	CommandStats     = "stats"
)

// Config holds all configuration options for a qcamapctl run
type Config struct {
	// Address of the coding view, e.g. https://www.qcamap.org/ui/projects/1/rq/2/coding.
	// Its host wins over BaseURL.
	Location string
	// Service base URL, used when Location is a bare path
	BaseURL string
	// Bearer token sent with every request
	Token string
	// Timeout per request
	Timeout time.Duration

	// Command is one of the Command* constants
	Command string
	// Args are the command's positional arguments
	Args []string

	// Rename categories emptied by merge with this format, e.g. "%s (merged)"
	RenameMerged string
	// Maximum number of concurrent marker writes, 0 for no limit
	WriteConcurrency int
	// Dump output file, stdout when empty
	Output string

	// Enable debug logging
	Verbose bool
	// Write logs to this file instead of stderr
	LogFile string
}

// NewConfig creates a new Config with default values taken from the environment
func NewConfig() *Config {
	return &Config{
		BaseURL: GetEnvOrDefault("QCAMAP_URL", constants.DefaultBaseURL),
		Token:   os.Getenv("QCAMAP_TOKEN"),
		Timeout: connection.DefaultHTTPTimeout,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Location == "" {
		return fmt.Errorf("location is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.WriteConcurrency < 0 {
		return fmt.Errorf("write concurrency must not be negative")
	}
	if c.RenameMerged != "" && strings.Count(c.RenameMerged, "%s") != 1 {
		return fmt.Errorf("rename format must contain exactly one %%s")
	}

	switch c.Command {
	case CommandMerge:
		if len(c.Args) < 2 {
			return fmt.Errorf("merge needs a base category and at least one other category")
		}
	case CommandDuplicate:
		if len(c.Args) != 2 {
			return fmt.Errorf("duplicate needs a base category and a new category name")
		}
	case CommandSort, CommandDump, CommandStats:
		if len(c.Args) != 0 {
			return fmt.Errorf("%s takes no arguments", c.Command)
		}
	case "":
		return fmt.Errorf("command is required")
	default:
		return fmt.Errorf("unknown command %q", c.Command)
	}
	return nil
}

func GetEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value
}
