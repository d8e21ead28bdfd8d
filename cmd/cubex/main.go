package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/kvistgaard/cubex/adapters"
	"github.com/kvistgaard/cubex/config"
	"github.com/kvistgaard/cubex/core"
	"github.com/kvistgaard/cubex/core/format"
	"github.com/kvistgaard/cubex/output"
)

func main() {
	logger := core.NewLogger(os.Stderr)

	if err := run(logger); err != nil {
		logger.Errorf("%s", err)
		os.Exit(1)
	}
}

func run(logger core.Logger) error {
	cfg, err := config.Get()
	if err != nil {
		return fmt.Errorf("config.Get: %w", err)
	}
	if cfg.ObjectID == "" {
		return fmt.Errorf("no object to extract, set CUBEX_OBJECT_ID")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mux := &adapters.Mux{}
	session, err := mux.Connect(cfg.SessionType, cfg.SessionURL)
	if err != nil {
		return fmt.Errorf("mux.Connect: %w", err)
	}
	defer session.Close()

	if err := applySelections(ctx, session, cfg.Selections); err != nil {
		return err
	}

	handle, err := session.OpenCube(ctx, cfg.ObjectID)
	if err != nil {
		return fmt.Errorf("session.OpenCube: %w", err)
	}
	defer handle.Release()

	descriptor, err := handle.Descriptor(ctx)
	if err != nil {
		return fmt.Errorf("handle.Descriptor: %w", err)
	}

	result, err := core.Extract(ctx, handle, descriptor, &core.Options{
		PageSize:  cfg.PageSize,
		MaxPages:  cfg.MaxPages,
		StartRow:  cfg.StartRow,
		PageDelay: cfg.PageDelay,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("core.Extract: %w", err)
	}

	if !result.Complete() {
		logger.Warnf("extraction %s: %d of %d rows gathered",
			result.Metadata.Reason, result.Metadata.ExtractedRows, result.Metadata.TotalRows)
	}

	return write(cfg, core.FormatRecords(result), logger)
}

func applySelections(ctx context.Context, session core.Session, selections []string) error {
	if len(selections) == 0 {
		return nil
	}

	selector, ok := session.(core.Selector)
	if !ok {
		return fmt.Errorf("session does not support selections")
	}

	for _, selection := range selections {
		field, value, ok := strings.Cut(selection, "=")
		if !ok {
			return fmt.Errorf("malformed selection %q, want field=value", selection)
		}
		if err := selector.ApplySelection(ctx, field, value); err != nil {
			return fmt.Errorf("selector.ApplySelection: %w", err)
		}
	}

	return nil
}

func write(cfg *config.Config, records *core.RecordSet, logger core.Logger) error {
	var formatter core.Formatter
	switch cfg.OutputFormat {
	case "json":
		formatter = format.NewJSON()
	case "table":
		formatter = format.NewTable()
	case "csv":
		formatter = format.NewCSV()
	default:
		return fmt.Errorf("unknown output format: %s", cfg.OutputFormat)
	}

	if cfg.OutputPath != "" {
		return output.NewFile(cfg.OutputPath, formatter, logger).Write(records)
	}

	buffer := output.NewBuffer(formatter)
	if err := buffer.Write(records); err != nil {
		return err
	}

	_, err := buffer.WriteTo(os.Stdout)
	return err
}
