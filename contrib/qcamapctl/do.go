package qcamapctl

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	qcamap "github.com/qcatools/qcamap.go"
	"github.com/qcatools/qcamap.go/pkg/connection"
	"github.com/qcatools/qcamap.go/pkg/location"
	"github.com/qcatools/qcamap.go/pkg/logger"
)

func newLogger(config *Config) (*logger.LogData, error) {
	build := logger.New().FromBuffer(os.Stderr)
	if config.LogFile != "" {
		build = build.FromPath(config.LogFile)
	}
	if config.Verbose {
		build = build.WithLevel(zerolog.DebugLevel)
	}
	return build.Make()
}

// newProject connects to the service and loads the project at config.Location
func newProject(ctx context.Context, config *Config, log logger.Logger) (*qcamap.Project, error) {
	loc, err := location.Parse(config.Location)
	if err != nil {
		return nil, err
	}

	base := loc.BaseURL
	if base == "" {
		base = config.BaseURL
	}
	params, err := connection.NewConfigFromString(base)
	if err != nil {
		return nil, err
	}
	params.Logger = log

	conn := connection.NewHTTPConnection(*params).SetTimeout(config.Timeout)
	if config.Token != "" {
		conn.SetToken(config.Token)
	}

	project := qcamap.New(conn, loc.ProjectID, loc.ResearchQuestionID,
		qcamap.WithLogger(log),
		qcamap.WithWriteConcurrency(config.WriteConcurrency),
	)
	if err := project.Load(ctx); err != nil {
		return nil, err
	}
	return project, nil
}

// Do loads the project and runs the configured command, writing its report
// to out. The configuration should be validated before calling this function.
func Do(ctx context.Context, config *Config, out io.Writer) error {
	log, err := newLogger(config)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer log.Close()

	project, err := newProject(ctx, config, log)
	if err != nil {
		return err
	}

	switch config.Command {
	case CommandMerge:
		return merge(ctx, project, config, out)
	case CommandDuplicate:
		created, err := project.Duplicate(ctx, config.Args[0], config.Args[1])
		if err != nil {
			return err
		}
		n := 0
		for range project.MarkersOfCategory(created) {
			n++
		}
		fmt.Fprintf(out, "created category %q (id %d) with %d markers\n", created.Name(), created.ID(), n)
		return nil
	case CommandSort:
		if err := project.SortCategories(ctx); err != nil {
			return err
		}
		for _, c := range project.Categories() {
			fmt.Fprintf(out, "%3d  %s\n", c.Ordering(), c.Name())
		}
		return nil
	case CommandDump:
		return dumpTo(project, config.Output, out)
	case CommandStats:
		writeStats(project, out)
		return nil
	default:
		return fmt.Errorf("unknown command %q", config.Command)
	}
}

func merge(ctx context.Context, project *qcamap.Project, config *Config, out io.Writer) error {
	base, others := config.Args[0], config.Args[1:]

	moved := 0
	for _, name := range others {
		if name == base {
			continue
		}
		c, err := project.CategoryByName(name)
		if err != nil {
			return err
		}
		for range project.MarkersOfCategory(c) {
			moved++
		}
	}

	if err := project.Merge(ctx, base, others...); err != nil {
		return err
	}
	fmt.Fprintf(out, "moved %d markers to %q\n", moved, base)

	if config.RenameMerged == "" {
		return nil
	}
	renamed, err := project.RenameEmptyCategories(ctx, config.RenameMerged, others...)
	for _, c := range renamed {
		fmt.Fprintf(out, "renamed category %d to %q\n", c.ID(), c.Name())
	}
	return err
}

func writeStats(project *qcamap.Project, out io.Writer) {
	fmt.Fprintf(out, "project %d, research question %d: %d documents, %d categories\n",
		project.ProjectID(), project.ResearchQuestionID(), len(project.Documents()), len(project.Categories()))
	for _, stat := range project.Stats() {
		if stat.Category == nil {
			fmt.Fprintf(out, "%6d  (unknown category)\n", stat.Markers)
			continue
		}
		fmt.Fprintf(out, "%6d  %s\n", stat.Markers, stat.Category.Name())
	}
}
