package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nelas/blaster/internal/util"
	"github.com/nelas/blaster/logger"
	"github.com/nelas/blaster/pkg/blast"
	rundb "github.com/nelas/blaster/pkg/db"
	"github.com/nelas/blaster/pkg/pipeline"

	_ "modernc.org/sqlite"
)

const logFile = "log_blaster.log"

var (
	flagCandidates string
	flagDatabase   string
	flagBlast      string
)

func main() {

	// Establish logger
	VERSION := "0.1.0"
	LOG_LEVEL := zapcore.DebugLevel

	if err := logger.InitLogger(LOG_LEVEL, logFile); err != nil {
		panic(err)
	}

	defer logger.Sync() // Make sure that the buffered is flushed.

	// Try load env
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env found, using local environment")
	}

	defaultCandidates := os.Getenv("BLASTER_CANDIDATES")
	if defaultCandidates == "" {
		defaultCandidates = "candidates"
	}

	logger.Info("BLASTer is running...", zap.String("Version", VERSION))

	root := newRootCmd(defaultCandidates)
	if err := root.Execute(); err != nil {
		logger.Error("Aborting...", zap.Error(err))
		logger.Sync()
		os.Exit(2)
	}
}

func newRootCmd(defaultCandidates string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "blaster -d <database> -b <command> [-c <folder>]",
		Short:         "BLAST candidate genes against a local database and extract the matching loci",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd)
		},
	}

	cmd.Flags().StringVarP(&flagCandidates, "candidates", "c", defaultCandidates,
		"folder with .fa or .gb files of candidate genes, one gene per file")
	cmd.Flags().StringVarP(&flagDatabase, "database", "d", "",
		"local database with new data (eg, transcriptome)")
	cmd.Flags().StringVarP(&flagBlast, "blast", "b", "",
		"BLAST command ("+blast.ModeList()+")")
	_ = cmd.MarkFlagRequired("database")
	_ = cmd.MarkFlagRequired("blast")

	return cmd
}

func run(cmd *cobra.Command) error {

	logger.Debug("Arguments",
		zap.String("candidates", flagCandidates),
		zap.String("database", flagDatabase),
		zap.String("blast", flagBlast))

	// Validate before touching the filesystem, so a bad invocation
	// leaves no folders behind.
	mode, err := blast.ParseMode(flagBlast)
	if err != nil {
		return err
	}

	if !util.DirExists(flagCandidates) {
		return fmt.Errorf("folder %q does not exist", flagCandidates)
	}

	finalDir := os.Getenv("BLASTER_FINAL")
	if finalDir == "" {
		finalDir = "final_results"
	}
	resultsDir := filepath.Join(flagCandidates, "results")

	if err := util.EnsureDir(resultsDir); err != nil {
		return err
	}

	// The manifest is best-effort: a broken history file must not stop
	// the batch.
	history, err := rundb.OpenRunDB(filepath.Join(resultsDir, "history.db"))
	if err != nil {
		logger.Warn("Run history disabled", zap.Error(err))
		history = nil
	} else {
		defer history.Close()
	}

	batch := &pipeline.Batch{
		CandidatesDir: flagCandidates,
		ResultsDir:    resultsDir,
		FinalDir:      finalDir,
		Database:      flagDatabase,
		Mode:          mode,
		Runner:        blast.NewRunner(logger.L()),
		History:       history,
		Log:           logger.L(),
	}

	if err := batch.Run(cmd.Context()); err != nil {
		return err
	}

	logger.Info("Done, bye!")
	return nil
}
