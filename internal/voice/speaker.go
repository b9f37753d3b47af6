package voice

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/banshee-data/holdmap/internal/monitoring"
)

// Speaker says one phrase and returns when it has finished or ctx is done.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// CommandSpeaker runs an external text-to-speech program such as espeak or
// say, passing the phrase as the final argument.
type CommandSpeaker struct {
	Command string
	Args    []string
}

func (s CommandSpeaker) Speak(ctx context.Context, text string) error {
	args := append(append([]string(nil), s.Args...), text)
	cmd := exec.CommandContext(ctx, s.Command, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s: %w: %s", s.Command, err, out)
	}
	return nil
}

// LogSpeaker writes phrases to the log instead of a sound device.
type LogSpeaker struct{}

func (LogSpeaker) Speak(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	monitoring.Logf("[voice] %s", text)
	return nil
}
