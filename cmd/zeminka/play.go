package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/zeminka/audio"
)

const playPollInterval = 20 * time.Millisecond

type playOptions struct {
	volume    float64
	position  []float64
	direction []float64
	velocity  []float64
	listener  []float64
	flat      bool
	timeout   time.Duration
}

func newPlayCmd(a *app) *cobra.Command {
	opts := &playOptions{}
	cmd := &cobra.Command{
		Use:   "play [file]",
		Short: "Play a sound file at a position in 3D space",
		Long: `Decodes the file (` + fmt.Sprint(audio.SupportedFormats()) + `) and plays it
until it ends, the timeout expires or the process is interrupted.

Example:
  zeminka play hit.wav --pos 4,0,-2 --vel -10,0,0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.runPlay(ctx, cmd, args[0], opts)
		},
	}

	cmd.Flags().Float64Var(&opts.volume, "volume", 1, "Linear volume, 0 mutes")
	cmd.Flags().Float64SliceVar(&opts.position, "pos", []float64{0, 0, 0}, "Source position x,y,z")
	cmd.Flags().Float64SliceVar(&opts.direction, "dir", []float64{0, 0, 0}, "Source cone direction x,y,z (0,0,0 is omnidirectional)")
	cmd.Flags().Float64SliceVar(&opts.velocity, "vel", []float64{0, 0, 0}, "Source velocity x,y,z")
	cmd.Flags().Float64SliceVar(&opts.listener, "listener", []float64{0, 0, 0}, "Listener position x,y,z")
	cmd.Flags().BoolVar(&opts.flat, "flat", false, "Disable spatialization")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Stop after this long (0 waits for the end)")
	return cmd
}

func (a *app) runPlay(ctx context.Context, cmd *cobra.Command, path string, opts *playOptions) error {
	pos, err := vec3Flag("pos", opts.position)
	if err != nil {
		return err
	}
	dir, err := vec3Flag("dir", opts.direction)
	if err != nil {
		return err
	}
	vel, err := vec3Flag("vel", opts.velocity)
	if err != nil {
		return err
	}
	lpos, err := vec3Flag("listener", opts.listener)
	if err != nil {
		return err
	}

	engine, err := audio.NewEngine(a.config.Audio, audio.WithLogger(a.logger))
	if err != nil {
		return err
	}
	if err := engine.Init(); err != nil {
		// Nothing to play without an engine
		a.logger.Fatal("audio engine init failed", zap.Error(err))
	}
	defer engine.Close()

	engine.SetListenerPosition(lpos)

	sound, err := engine.Load(path)
	if err != nil {
		return err
	}
	defer engine.Unload(sound)

	for _, set := range []error{
		engine.SetVolume(sound, opts.volume),
		engine.SetPosition(sound, pos),
		engine.SetDirection(sound, dir),
		engine.SetVelocity(sound, vel),
		engine.SetSpatialization(sound, !opts.flat),
	} {
		if set != nil {
			return set
		}
	}

	if err := engine.Play(sound); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "playing %s (%.2fs)\n", sound.Name(), sound.Length())

	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}
	return waitDrained(ctx, sound)
}

// waitDrained blocks until s stops or ctx is done; cancellation is not an error
func waitDrained(ctx context.Context, s *audio.Sound) error {
	ticker := time.NewTicker(playPollInterval)
	defer ticker.Stop()
	for s.IsPlaying() {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
	return nil
}

func vec3Flag(name string, v []float64) (mgl64.Vec3, error) {
	if len(v) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("--%s needs 3 components, got %d", name, len(v))
	}
	return mgl64.Vec3{v[0], v[1], v[2]}, nil
}
