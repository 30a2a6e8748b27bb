package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/slok/habits/internal/conventions"
	"github.com/slok/habits/internal/log"
	"github.com/slok/habits/internal/printer"
	"github.com/slok/habits/pkg/lib"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"

	formatTable = "table"
	formatJSON  = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug      bool
	NoLog      bool
	NoColor    bool
	LoggerType string
	Storage    string
	SeedFile   string

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)
	app.Flag("storage", "State backend, the state is never persisted.").Default(string(lib.StorageMemory)).EnumVar(&c.Storage, string(lib.StorageMemory), string(lib.StorageSQLite))
	app.Flag("seed-file", fmt.Sprintf("YAML seed with the initial state (default %s if it exists, the embedded seed otherwise).", defaultSeedPath())).StringVar(&c.SeedFile)

	return c
}

func defaultSeedPath() string {
	return conventions.SeedPath(homedir.HomeDir())
}

// NewStore returns a store loaded with the configured seed.
func (r RootCommand) NewStore(ctx context.Context) (*lib.Store, error) {
	seedFS, seedPath, err := r.seed()
	if err != nil {
		return nil, err
	}

	store, err := lib.New(ctx, lib.Config{
		Storage:  lib.StorageType(r.Storage),
		SeedFS:   seedFS,
		SeedPath: seedPath,
		Logger:   r.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create store: %w", err)
	}

	return store, nil
}

// seed resolves the seed filesystem. A nil filesystem selects the embedded seed.
func (r RootCommand) seed() (fs.FS, string, error) {
	path := r.SeedFile
	if path == "" {
		path = defaultSeedPath()
		if _, err := os.Stat(path); err != nil {
			r.Logger.Debugf("No seed at %s, using the embedded one", path)
			return nil, "", nil
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("could not read seed file: %w", err)
	}
	if info.IsDir() {
		return nil, "", errors.New("seed file is a directory")
	}

	r.Logger.Debugf("Using seed %s", path)
	return os.DirFS(filepath.Dir(path)), filepath.Base(path), nil
}

func newPrinter(format string, w io.Writer) printer.Printer {
	if format == formatJSON {
		return printer.NewJSONPrinter(w)
	}
	return printer.NewTablePrinter(w)
}
