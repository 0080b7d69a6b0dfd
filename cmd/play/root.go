package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"guessword/internal/cli"
	"guessword/internal/config"
	"guessword/internal/game"
)

var rootCmd = &cobra.Command{
	Use:   "guessword",
	Short: "Play a round of Guess the Word in the terminal",
	Long: `Guess the Word shows one word at a time while a countdown runs.
Press c (or space) when your team guesses it, s to skip, q to quit.`,
	SilenceUsage: true,
	RunE:         runPlay,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().String("config", os.Getenv("GUESSWORD_CONFIG"), "Path to a YAML config file")
	rootCmd.Flags().Int("seconds", 0, "Round length in seconds (overrides config)")
	rootCmd.Flags().Int("tick", 0, "Countdown tick in seconds (overrides config)")
	rootCmd.Flags().Int("panic", -1, "Countdown cue threshold in seconds (overrides config)")
	rootCmd.Flags().String("words", "", "Word list file, one word per line (overrides config)")
	rootCmd.Flags().Bool("bell", true, "Ring the terminal bell on cues")
	rootCmd.Flags().Bool("no-color", false, "Disable colored output")
}

func runPlay(cmd *cobra.Command, args []string) error {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	applyFlags(cmd, &cfg.Game)

	// Log lines would tear the status line; only warnings and up by default.
	level, _ := cfg.Level()
	if level < zerolog.WarnLevel {
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)

	gameCfg, err := cfg.Game.Session()
	if err != nil {
		return err
	}

	profile := termenv.ColorProfile()
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		profile = termenv.Ascii
	}
	bell, _ := cmd.Flags().GetBool("bell")
	renderer := cli.NewRenderer(cmd.OutOrStdout(), profile, bell)

	sess, err := game.New(gameCfg)
	if err != nil {
		return err
	}
	defer sess.Dispose()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	restore := rawInput()
	defer restore()

	cli.Play(ctx, sess, os.Stdin, renderer)
	return nil
}

// applyFlags copies explicitly set flags over the loaded game settings.
func applyFlags(cmd *cobra.Command, g *config.GameConfig) {
	flags := cmd.Flags()
	if flags.Changed("seconds") {
		g.TotalSeconds, _ = flags.GetInt("seconds")
	}
	if flags.Changed("tick") {
		g.TickSeconds, _ = flags.GetInt("tick")
	}
	if flags.Changed("panic") {
		g.PanicThresholdSeconds, _ = flags.GetInt("panic")
	}
	if flags.Changed("words") {
		g.WordsFile, _ = flags.GetString("words")
	}
}

// rawInput switches stdin to raw mode when it is a terminal so single key
// presses arrive without Enter. The returned func restores the terminal.
func rawInput() func() {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return func() {}
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		log.Warn().Err(err).Msg("could not enable raw input; press Enter after each key")
		return func() {}
	}
	return func() {
		if err := term.Restore(fd, state); err != nil {
			log.Warn().Err(err).Msg("could not restore terminal")
		}
	}
}

