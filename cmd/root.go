package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	mtp "github.com/modeltoolsprotocol/go-sdk"
	"github.com/rogersnm/rptodo/internal/config"
	"github.com/rogersnm/rptodo/internal/logging"
	"github.com/rogersnm/rptodo/internal/markdown"
	"github.com/rogersnm/rptodo/internal/repofile"
	"github.com/rogersnm/rptodo/internal/store"
	"github.com/rogersnm/rptodo/internal/todo"
	"github.com/spf13/cobra"
)

var (
	version   = "0.1.0"
	configDir string
	dbPath    string
	verbose   bool
	cfg       *config.Config
	logger    = logging.Discard()
)

var errNotInitialized = errors.New(`no to-do database configured. Please, run "rptodo init"`)

var rootCmd = &cobra.Command{
	Use:     "rptodo",
	Short:   "A command-line to-do list manager",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.New(cmd.ErrOrStderr(), verbose)

		var err error
		cfg, err = config.Load(configDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", config.DefaultDir(), "config directory path")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "to-do database path (overrides config and .rptodo-db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "enable debug logging")
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	mtpOpts := &mtp.DescribeOptions{
		Commands: map[string]*mtp.CommandAnnotation{
			"init": {
				Examples: []mtp.Example{
					{Description: "Create the database at an explicit path", Command: "rptodo init --db-path ~/todo.json"},
				},
			},
			"add": {
				Examples: []mtp.Example{
					{Description: "Add a to-do with default priority", Command: "rptodo add Wash the car"},
					{Description: "Add a high-priority to-do", Command: "rptodo add Pay rent -p 1"},
				},
			},
			"list": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Table of to-dos with position, ID, priority, status and description",
				},
			},
			"show": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/markdown",
					Description: "The to-do as a markdown document with YAML frontmatter",
				},
				Examples: []mtp.Example{
					{Description: "Show a to-do", Command: "rptodo show 0b6d8a0e-6f4e-4c44-9d1a-2d0f3c8a1b7e"},
				},
			},
			"done": {
				Examples: []mtp.Example{
					{Description: "Mark a to-do as done", Command: "rptodo done 0b6d8a0e-6f4e-4c44-9d1a-2d0f3c8a1b7e"},
				},
			},
			"delete": {
				Examples: []mtp.Example{
					{Description: "Delete one to-do by ID", Command: "rptodo delete 0b6d8a0e-6f4e-4c44-9d1a-2d0f3c8a1b7e"},
				},
			},
			"clear": {
				Examples: []mtp.Example{
					{Description: "Delete every to-do (interactive confirm)", Command: "rptodo clear"},
					{Description: "Delete every to-do (skip confirm)", Command: "rptodo clear --force"},
				},
			},
			"search": {
				Examples: []mtp.Example{
					{Description: "Find to-dos mentioning a word", Command: "rptodo search car"},
				},
			},
			"link": {
				Examples: []mtp.Example{
					{Description: "Use a project-local database below the current directory", Command: "rptodo link ./todo.json"},
				},
			},
		},
	}

	mtp.WithDescribe(rootCmd, mtpOpts)
}

// Execute runs the command tree and prints any error in red.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, markdown.Failure(err.Error()))
	}
	return err
}

// resolveDatabase returns the database path from the --db flag, a
// .rptodo-db link file, or the config.
func resolveDatabase() (string, error) {
	if dbPath != "" {
		return filepath.Abs(dbPath)
	}
	if cwd, err := os.Getwd(); err == nil {
		p, _, err := repofile.Find(cwd)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", repofile.FileName, err)
		}
		if p != "" {
			return p, nil
		}
	}
	if cfg != nil && cfg.Database != "" {
		return cfg.Database, nil
	}
	return "", errNotInitialized
}

// openService wires the task service to the resolved database, which must
// already exist.
func openService() (*todo.Service, error) {
	path, err := resolveDatabase()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database not found at %s. Please, run \"rptodo init\"", path)
	}
	logger.Debug("using database", "path", path)
	return todo.New(store.New(path), logger), nil
}

// commandError reports a failed operation by its error classification,
// keeping the cause reachable through Unwrap.
type commandError struct {
	action string
	err    error
}

func fail(action string, err error) error {
	logger.Debug(action+" failed", "err", err)
	return &commandError{action: action, err: err}
}

func (e *commandError) Error() string {
	return fmt.Sprintf("%s failed with %q", e.action, describe(e.err))
}

func (e *commandError) Unwrap() error {
	return e.err
}

func describe(err error) string {
	for _, kind := range []error{
		store.ErrRead, store.ErrWrite, store.ErrFormat,
		todo.ErrEmptyDescription, todo.ErrEmptyID, todo.ErrNotFound,
	} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return err.Error()
}
