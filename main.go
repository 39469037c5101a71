// Package main provides the kitten-tts CLI: the MCP server, the batching
// daemon, the hook entrypoint, and one-shot speak commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dhofheinz/claude-kitten-audio-feedback/internal/audio"
	"github.com/dhofheinz/claude-kitten-audio-feedback/internal/batch"
	"github.com/dhofheinz/claude-kitten-audio-feedback/internal/cache"
	"github.com/dhofheinz/claude-kitten-audio-feedback/internal/dispatch"
	"github.com/dhofheinz/claude-kitten-audio-feedback/internal/engine"
	"github.com/dhofheinz/claude-kitten-audio-feedback/internal/hook"
	"github.com/dhofheinz/claude-kitten-audio-feedback/internal/kitten"
	"github.com/dhofheinz/claude-kitten-audio-feedback/internal/queue"
	"github.com/dhofheinz/claude-kitten-audio-feedback/internal/server"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	cfg        kitten.Config

	rootCmd = &cobra.Command{
		Use:           "kitten-tts",
		Short:         "Spoken feedback for coding-assistant hooks",
		SilenceErrors: false,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadOptions(cmd)
		},
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP stdio server exposing speak, announce and code_review",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			d, err := buildDispatcher()
			if err != nil {
				return err
			}
			return server.ServeStdio(server.New(d))
		},
	}

	daemonCmd = &cobra.Command{
		Use:   "daemon",
		Short: "Run the batching daemon that watches the tip queue and speaks batches",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			d, err := buildDispatcher()
			if err != nil {
				return err
			}
			q, err := queue.New(cfg.QueuePath)
			if err != nil {
				return err
			}

			speaker := batch.SpeakerFunc(func(ctx context.Context, text string) error {
				_, err := d.Speak(ctx, text, "", kitten.PersonalityFriendly)
				return err
			})

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sched := batch.New(q, speaker, cfg.BatchWait)
			if err := sched.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}

	speakVoice       string
	speakPersonality string

	speakCmd = &cobra.Command{
		Use:   "speak [TEXT...]",
		Short: "Speak text aloud",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			personality, err := kitten.ParsePersonality(speakPersonality)
			if err != nil {
				return err
			}
			d, err := buildDispatcher()
			if err != nil {
				return err
			}
			status, err := d.Speak(context.Background(), strings.Join(args, " "), speakVoice, personality)
			if err != nil {
				return err
			}
			fmt.Println(status)
			return nil
		},
	}

	announceTone string

	announceCmd = &cobra.Command{
		Use:   "announce [MESSAGE...]",
		Short: "Speak a short announcement with a tone-matched voice",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			tone, err := kitten.ParseTone(announceTone)
			if err != nil {
				return err
			}
			d, err := buildDispatcher()
			if err != nil {
				return err
			}
			status, err := d.Announce(context.Background(), strings.Join(args, " "), tone)
			if err != nil {
				return err
			}
			fmt.Println(status)
			return nil
		},
	}

	codeReviewCmd = &cobra.Command{
		Use:   "code-review [FEEDBACK...]",
		Short: "Speak review feedback as a grizzled senior engineer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			d, err := buildDispatcher()
			if err != nil {
				return err
			}
			status, err := d.CodeReview(context.Background(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Println(status)
			return nil
		},
	}

	hookCmd = &cobra.Command{
		Use:   "hook",
		Short: "Read one lifecycle event from stdin and enqueue a tip",
		Long: "Reads a single lifecycle event as JSON from standard input and, when the\n" +
			"event warrants speech, appends a tip to the shared queue for the daemon to\n" +
			"batch. Always exits zero so a broken audio setup never fails the assistant.",
		Args: cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			// Never fail and never block past the timeout. Audio is an
			// enhancement, not part of the assistant's critical path.
			ctx, cancel := context.WithTimeout(context.Background(), cfg.HookTimeout)
			defer cancel()

			ev, err := hook.ReadEventContext(ctx, os.Stdin)
			if err != nil {
				log.Warn("decoding hook event", "err", err)
				return
			}
			tip, ok := hook.TipFromEvent(ev)
			if !ok {
				return
			}

			q, err := queue.New(cfg.QueuePath)
			if err != nil {
				log.Warn("opening tip queue", "err", err)
				return
			}
			if err := q.Append(ctx, tip); err != nil {
				log.Warn("enqueueing tip", "err", err)
			}
		},
	}
)

// loadOptions builds the process config and applies flag overrides. Config
// problems surface as warnings, never as a failed command; a broken .env must
// not take the hook path down with it.
func loadOptions(cmd *cobra.Command) error {
	loaded, warnings := kitten.LoadConfig()
	cfg = loaded

	if v := viper.GetString("voice"); cmd.Flags().Changed("voice") && v != "" {
		cfg.Voice = v
	}
	if v := viper.GetString("engine"); cmd.Flags().Changed("engine") && v != "" {
		cfg.Engine = v
	}
	if v := viper.GetString("player"); cmd.Flags().Changed("player") && v != "" {
		cfg.AudioPlayer = v
	}
	if v := viper.GetString("queue"); cmd.Flags().Changed("queue") && v != "" {
		cfg.QueuePath = v
	}
	if cmd.Flags().Changed("wait") {
		cfg.BatchWait = viper.GetDuration("wait")
	}

	setupLog(cfg.EnableLogging)
	for _, w := range warnings {
		log.Warn("config", "warning", w)
	}
	return nil
}

// setupLog configures the process logger. When logging is disabled only
// fatal output survives, keeping hook and MCP stdio streams clean.
func setupLog(enabled bool) {
	log.SetOutput(os.Stderr)
	if enabled {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
		return
	}
	log.SetLevel(log.FatalLevel)
}

// buildDispatcher assembles the synthesis chain and player from the config.
func buildDispatcher() (*dispatch.Dispatcher, error) {
	var engines []engine.Engine

	switch cfg.Engine {
	case "kitten":
		k, err := engine.NewKitten(engine.KittenConfig{
			Model:      cfg.Model,
			VenvDir:    cfg.VenvDir,
			SampleRate: cfg.SampleRate,
		})
		if err != nil {
			return nil, err
		}
		engines = append(engines, k, engine.NewEspeak())
	case "espeak":
		engines = append(engines, engine.NewEspeak())
	default:
		return nil, fmt.Errorf("unknown engine %q", cfg.Engine)
	}

	chain, err := engine.NewChain(engines...)
	if err != nil {
		return nil, err
	}

	var player audio.Player
	if cfg.AudioPlayer == "oto" {
		player = audio.NewOtoPlayer()
	} else {
		player = audio.NewExecPlayer(cfg.AudioPlayer)
	}

	var opts []dispatch.Option
	if cfg.CacheMB > 0 {
		opts = append(opts, dispatch.WithCache(cache.New(int64(cfg.CacheMB)<<20)))
	}

	return dispatch.New(chain, player, cfg, opts...), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default kitten.yml in the user config dir)")
	rootCmd.PersistentFlags().String("voice", "", "default voice")
	rootCmd.PersistentFlags().String("engine", "", "synthesis engine (kitten, espeak)")
	rootCmd.PersistentFlags().String("player", "", "audio player binary, or 'oto' for in-process playback")
	rootCmd.PersistentFlags().String("queue", "", "tip queue file path")
	rootCmd.PersistentFlags().Duration("wait", 0, "batch window duration")

	_ = viper.BindPFlag("voice", rootCmd.PersistentFlags().Lookup("voice"))
	_ = viper.BindPFlag("engine", rootCmd.PersistentFlags().Lookup("engine"))
	_ = viper.BindPFlag("player", rootCmd.PersistentFlags().Lookup("player"))
	_ = viper.BindPFlag("queue", rootCmd.PersistentFlags().Lookup("queue"))
	_ = viper.BindPFlag("wait", rootCmd.PersistentFlags().Lookup("wait"))

	speakCmd.Flags().StringVar(&speakVoice, "voice", "", "voice to use for this message")
	speakCmd.Flags().StringVar(&speakPersonality, "personality", "", "speaking personality (grizzled, friendly, professional, zen)")
	announceCmd.Flags().StringVar(&announceTone, "tone", "", "announcement tone (success, warning, info, error)")

	rootCmd.AddCommand(serveCmd, daemonCmd, speakCmd, announceCmd, codeReviewCmd, hookCmd, configCmd)
}
