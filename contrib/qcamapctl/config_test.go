package qcamapctl_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qcatools/qcamap.go/contrib/qcamapctl"
	"github.com/qcatools/qcamap.go/pkg/constants"
)

const testLocation = "https://www.qcamap.org/ui/projects/26562/rq/39860/coding"

func TestNewConfig(t *testing.T) {
	t.Setenv("QCAMAP_URL", "")
	t.Setenv("QCAMAP_TOKEN", "secret")

	config := qcamapctl.NewConfig()
	require.NotNil(t, config)
	assert.Equal(t, constants.DefaultBaseURL, config.BaseURL)
	assert.Equal(t, "secret", config.Token)
	assert.Equal(t, 30*time.Second, config.Timeout)

	t.Setenv("QCAMAP_URL", "http://localhost:8080")
	assert.Equal(t, "http://localhost:8080", qcamapctl.NewConfig().BaseURL)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *qcamapctl.Config {
		return &qcamapctl.Config{
			Location: testLocation,
			Timeout:  time.Second,
			Command:  qcamapctl.CommandSort,
		}
	}

	t.Run("ValidConfig", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	cases := []struct {
		name   string
		modify func(c *qcamapctl.Config)
		errMsg string
	}{
		{"MissingLocation", func(c *qcamapctl.Config) { c.Location = "" }, "location is required"},
		{"ZeroTimeout", func(c *qcamapctl.Config) { c.Timeout = 0 }, "timeout must be positive"},
		{"NegativeWriteConcurrency", func(c *qcamapctl.Config) { c.WriteConcurrency = -1 }, "write concurrency"},
		{"MissingCommand", func(c *qcamapctl.Config) { c.Command = "" }, "command is required"},
		{"UnknownCommand", func(c *qcamapctl.Config) { c.Command = "explode" }, `unknown command "explode"`},
		{"SortWithArgs", func(c *qcamapctl.Config) { c.Args = []string{"x"} }, "sort takes no arguments"},
		{"MergeWithoutOthers", func(c *qcamapctl.Config) {
			c.Command = qcamapctl.CommandMerge
			c.Args = []string{"Design"}
		}, "at least one other category"},
		{"DuplicateWithoutName", func(c *qcamapctl.Config) {
			c.Command = qcamapctl.CommandDuplicate
			c.Args = []string{"Design"}
		}, "new category name"},
		{"BadRenameFormat", func(c *qcamapctl.Config) { c.RenameMerged = "merged" }, "exactly one %s"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.modify(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}

	t.Run("MergeWithRename", func(t *testing.T) {
		c := valid()
		c.Command = qcamapctl.CommandMerge
		c.Args = []string{"Design", "Not design", "Other"}
		c.RenameMerged = "%s (merged)"
		assert.NoError(t, c.Validate())
	})
}
