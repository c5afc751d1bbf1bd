// Package speech wraps the local text-to-speech and speech-to-text engines.
// Both are external programs; this package only runs them.
package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

var (
	// ErrNoSpeech is returned when nothing intelligible was captured.
	ErrNoSpeech = errors.New("no speech detected")
	// ErrNotConfigured is returned when no engine command is set.
	ErrNotConfigured = errors.New("speech engine not configured")
)

// Speaker speaks text through the local audio device. Speak blocks until playback ends.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Transcriber captures audio for a bounded window and returns the recognized text.
type Transcriber interface {
	Transcribe(ctx context.Context) (string, error)
}

// CommandSpeaker runs a TTS program (espeak, say, ...) with the text as its last
// argument, after a "--" so the text is never parsed as an option.
type CommandSpeaker struct {
	name string
	args []string
}

// NewCommandSpeaker parses a command line such as "espeak -s 140".
func NewCommandSpeaker(command string) *CommandSpeaker {
	name, args := splitCommand(command)
	return &CommandSpeaker{name: name, args: args}
}

// Speak runs the TTS command and waits for it to finish.
func (s *CommandSpeaker) Speak(ctx context.Context, text string) error {
	if s.name == "" {
		return ErrNotConfigured
	}
	args := append(append([]string{}, s.args...), "--", text)
	cmd := exec.CommandContext(ctx, s.name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("tts engine %s: %w: %s", s.name, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// CommandTranscriber runs a capture-and-recognize program and reads the
// transcript from its standard output. The program is killed when the
// listen window elapses.
type CommandTranscriber struct {
	name   string
	args   []string
	window time.Duration
}

// NewCommandTranscriber parses a command line and bounds each run by window.
func NewCommandTranscriber(command string, window time.Duration) *CommandTranscriber {
	name, args := splitCommand(command)
	return &CommandTranscriber{name: name, args: args, window: window}
}

// Transcribe returns trimmed stdout, or ErrNoSpeech if it is empty or the window ran out.
func (t *CommandTranscriber) Transcribe(ctx context.Context) (string, error) {
	if t.name == "" {
		return "", ErrNotConfigured
	}
	if t.window > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.window)
		defer cancel()
	}

	out, err := exec.CommandContext(ctx, t.name, t.args...).Output()
	if ctx.Err() != nil {
		return "", ErrNoSpeech
	}
	if err != nil {
		return "", fmt.Errorf("stt engine %s: %w", t.name, err)
	}
	transcript := strings.TrimSpace(string(out))
	if transcript == "" {
		return "", ErrNoSpeech
	}
	return transcript, nil
}

func splitCommand(command string) (string, []string) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}
