package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/zeminka/audio"
	"github.com/lixenwraith/zeminka/sandbox"
)

func newSandboxCmd(a *app) *cobra.Command {
	var sound string
	var bodies int
	var seed int64

	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Terminal playground with colliding boxes",
		Long: `Steer the '@' box with the arrow keys; space stops it, p pauses,
m mutes, q or Esc quits. With --sound the file plays at every contact point
and the listener follows the steered box. Without it a short
synthesized blip plays instead.

Logs go to --log-file; point it at a file to keep the screen clean.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.config.Sandbox
			if cmd.Flags().Changed("sound") {
				cfg.Sound = sound
			}
			if cmd.Flags().Changed("bodies") {
				cfg.Bodies = bodies
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = seed
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.runSandbox(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&sound, "sound", "", "Collision sound file")
	cmd.Flags().IntVar(&bodies, "bodies", 0, "Number of boxes (default from config)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Spawn seed (default from config)")
	return cmd
}

func (a *app) runSandbox(ctx context.Context, cfg sandbox.Config) error {
	engine, sound, err := a.collisionSound(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	world, err := sandbox.NewWorld(cfg, sandbox.WithLogger(a.logger), sandbox.WithSound(engine, sound))
	if err != nil {
		return err
	}
	world.Populate()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	err = sandbox.NewGame(screen, world, a.logger).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// collisionSound starts an engine and loads the collision sound, a synthesized
// blip when no file is configured. A missing output device is not fatal here;
// the sandbox falls back to the silent device
func (a *app) collisionSound(cfg sandbox.Config) (*audio.Engine, *audio.Sound, error) {
	engine, err := audio.NewEngine(a.config.Audio, audio.WithLogger(a.logger))
	if err != nil {
		return nil, nil, err
	}
	if err := engine.Init(); err != nil {
		a.logger.Warn("audio unavailable, falling back to silent output", zap.Error(err))
		silent := a.config.Audio
		silent.Enabled = false
		if engine, err = audio.NewEngine(silent, audio.WithLogger(a.logger)); err != nil {
			return nil, nil, err
		}
		if err := engine.Init(); err != nil {
			return nil, nil, err
		}
	}

	var sound *audio.Sound
	if cfg.Sound != "" {
		sound, err = engine.Load(cfg.Sound)
	} else {
		sound, err = engine.LoadBuffer("blip", audio.Blip(engine.SampleRate()))
	}
	if err == nil {
		err = engine.SetVolume(sound, cfg.SoundVolume)
	}
	if err != nil {
		engine.Close()
		return nil, nil, err
	}
	return engine, sound, nil
}
