// Package app is the tagedit command: it parses arguments, loads the files
// and runs the matching editing session.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/llehouerou/tagedit/internal/config"
	"github.com/llehouerou/tagedit/internal/errmsg"
	"github.com/llehouerou/tagedit/internal/logging"
	"github.com/llehouerou/tagedit/internal/record"
	"github.com/llehouerou/tagedit/internal/session"
	"github.com/llehouerou/tagedit/internal/tags"
	"github.com/llehouerou/tagedit/internal/ui/term"
)

// Deps are the process resources Run works with.
type Deps struct {
	In    io.Reader
	Out   io.Writer
	Store tags.Store
	// Term overrides the terminal built from In and Out.
	Term session.Terminal
	// LoadConfig overrides config.Load.
	LoadConfig func(explicit string) (*config.Config, error)
}

const long = `Edit the tags of a music file, of every music file in a directory, or of
a list of files.

A single file opens the file editor. A directory, or several paths, open the
batch editor over every decodable music file.`

// Run executes the command with args (without the program name) and
// returns the process exit status.
func Run(args []string, deps Deps) int {
	status := 0
	cmd := newCommand(deps, &status)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		return 2
	}
	return status
}

func newCommand(deps Deps, status *int) *cobra.Command {
	var (
		configPath string
		noClear    bool
	)
	cmd := &cobra.Command{
		Use:   "tagedit [flags] PATH...",
		Short: "Edit the tags of music files from the terminal",
		Long:  long,
		RunE: func(cmd *cobra.Command, paths []string) error {
			if len(paths) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Error: No arguments provided")
				_ = cmd.Usage()
				*status = 1
				return nil
			}
			edit(deps, paths, configPath, noClear)
			return nil
		},
	}
	cmd.SetIn(deps.In)
	cmd.SetOut(deps.Out)
	cmd.SetErr(deps.Out)
	cmd.Flags().StringVar(&configPath, "config", "", "read settings from this TOML file")
	cmd.Flags().BoolVar(&noClear, "no-clear", false, "do not clear the screen between menus")
	return cmd
}

// edit loads paths and runs the matching session until the user leaves it.
func edit(deps Deps, paths []string, configPath string, noClear bool) {
	cfg := loadConfig(deps, configPath)
	if noClear {
		cfg.ClearScreen = false
	}

	logger, closeLog, err := logging.Open(cfg.LogFile)
	if err != nil {
		fmt.Fprintln(deps.Out, "Warning: "+errmsg.FormatWith(errmsg.OpLogOpen, cfg.LogFile, err))
	}
	defer func() { _ = closeLog() }()

	t := deps.Term
	if t == nil {
		t = term.New(deps.In, deps.Out, term.Options{ClearScreen: cfg.ClearScreen, Log: logger})
	}

	env := session.Env{Term: t, Store: deps.Store, Log: logger}
	loader := &record.Loader{
		Store:       deps.Store,
		NaturalSort: cfg.NaturalSort,
		AudioInfo:   cfg.AudioInfo,
		Log:         logger,
		Skipped: func(path string, err error) {
			t.Println(skipMessage(path, err))
		},
	}

	if len(paths) == 1 {
		runPath(env, loader, paths[0])
	} else {
		runPaths(env, loader, paths)
	}

	t.Println("Closing Program")
}

// runPath edits a single path: a directory as a batch, a file on its own.
func runPath(env session.Env, loader *record.Loader, path string) {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		records, err := loader.LoadDir(path)
		if err != nil {
			env.Log.Error(errmsg.FormatWith(errmsg.OpDirectoryRead, path, err))
			env.Term.Println("Error: Failed to read directory")
			return
		}
		if len(records) == 0 {
			env.Term.Println("Error: No files in directory")
			return
		}
		finish(env, session.NewBatch(env, records).Run())

	case err == nil && info.Mode().IsRegular():
		rec, err := loader.LoadFile(path)
		if err != nil {
			env.Log.Error(errmsg.FormatWith(errmsg.OpTagsRead, path, err))
			env.Term.Println("Error: Not a music file")
			return
		}
		finish(env, session.NewSingle(env, rec).Run())

	default:
		env.Term.Println("Error: " + path + " is not a file")
	}
}

// runPaths edits an explicit file list as a batch, even when only one file
// survives loading.
func runPaths(env session.Env, loader *record.Loader, paths []string) {
	records := loader.LoadPaths(paths)
	if len(records) == 0 {
		env.Term.Println("Error: No valid music files")
		return
	}
	finish(env, session.NewBatch(env, records).Run())
}

func finish(env session.Env, unsaved bool) {
	if unsaved {
		env.Log.Warn("exited with unsaved changes")
	}
}

func skipMessage(path string, err error) string {
	if errors.Is(err, record.ErrNotFile) {
		return "Error: " + path + " is not a file"
	}
	return "Error: " + path + " is not a music file"
}

func loadConfig(deps Deps, explicit string) *config.Config {
	load := deps.LoadConfig
	if load == nil {
		load = config.Load
	}
	cfg, err := load(explicit)
	if err != nil {
		fmt.Fprintln(deps.Out, "Warning: "+errmsg.FormatWith(errmsg.OpConfigLoad, explicit, err))
		return config.Default()
	}
	return cfg
}
