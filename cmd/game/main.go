package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/control"
	"github.com/tomz197/invaders/internal/logging"
	"github.com/tomz197/invaders/internal/loop"
	"github.com/tomz197/invaders/internal/perception"
)

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to read .env: %v\n", err)
		os.Exit(1)
	}
	log, err := logging.New(logging.OptionsFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	controls := control.NewChannel()
	opts := loop.Options{
		Controls: controls,
		Log:      log,
	}

	// Hands-free control is optional; keyboard play works without it.
	if url := config.GetEnv("INVADERS_PERCEPTION_URL", ""); url != "" {
		model := perception.NewRemoteModel(url, log)
		defer model.Close()

		sampler := perception.NewSampler(perception.ConfigFromEnv(), model, nil, controls, log)
		sampler.Start(ctx)
		defer sampler.Wait()
		defer sampler.Stop()

		opts.Status = func() string {
			return fmt.Sprintf("detect=%s", sampler.LastDetect().Round(time.Millisecond))
		}
	}

	if config.GetEnvBool("INVADERS_AUDIO", false) {
		cues := audio.New(config.GetEnvFloat("INVADERS_AUDIO_VOLUME", 0.5), log)
		if err := cues.Init(); err == nil {
			defer cues.Close()
			opts.Cues = cues
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	session := loop.NewSession(os.Stdin, os.Stdout, opts)
	if err := session.Run(ctx); err != nil {
		log.Errorw("game error", "error", err)
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
	log.Infow("game finished", "game", session.Game().ID, "score", session.Game().Score)
}
