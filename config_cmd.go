package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/x/editor"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
)

const defaultConfig = `# synthesis model
model: "KittenML/kitten-tts-nano-0.2"
# default voice (expr-voice-2-m through expr-voice-5-f)
voice: "expr-voice-2-m"
# sample rate of generated audio
sample_rate: 24000
# synthesis engine: kitten or espeak
engine: "kitten"
# virtualenv directory holding the synthesis runtime
venv_dir: "tts_venv"

# quiet window before a batch of tips is spoken
batch_wait: "3s"
# tip queue file (defaults to the runtime dir)
# queue_path: ""

# maximum characters per synthesis call
max_chunk: 380

# audio player binary, or "oto" for in-process playback
audio_player: "paplay"

# in-memory audio cache size in MB (0 disables)
cache_mb: 8

# per-hook deadline for enqueueing a tip
hook_timeout: "5s"

# write debug logs to stderr
enable_logging: false
`

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Edit the kitten-tts config file",
	Long:    "Edit the kitten-tts config file. We'll use EDITOR to determine which editor to use. If the config file doesn't exist, it will be created.",
	Example: "kitten-tts config\nkitten-tts config --config path/to/kitten.yml",
	Args:    cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		if err := ensureConfigFile(); err != nil {
			return err
		}

		c, err := editor.Cmd("kitten-tts", configFile)
		if err != nil {
			return fmt.Errorf("unable to set config file: %w", err)
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("unable to run command: %w", err)
		}

		fmt.Println("Wrote config file to:", configFile)
		return nil
	},
}

func ensureConfigFile() error {
	if configFile == "" {
		scope := gap.NewScope(gap.User, "kitten-tts")
		dirs, err := scope.ConfigDirs()
		if err != nil || len(dirs) == 0 {
			return errors.New("could not find a configuration directory")
		}
		configFile = filepath.Join(dirs[0], "kitten.yml")
	}

	if ext := path.Ext(configFile); ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("'%s' is not a supported configuration type: use '%s' or '%s'", ext, ".yaml", ".yml")
	}

	if _, err := os.Stat(configFile); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
			return fmt.Errorf("unable create directory: %w", err)
		}

		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("unable to create config file: %w", err)
		}
		defer func() { _ = f.Close() }()

		if _, err := f.WriteString(defaultConfig); err != nil {
			return fmt.Errorf("unable to write config file: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("unable to stat config file: %w", err)
	}
	return nil
}
