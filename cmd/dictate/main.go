// Command dictate is the voice dictation engine: press a key, speak,
// and the formatted transcript lands on the clipboard.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/alkime/dictate/internal/app"
	"github.com/alkime/dictate/internal/audio"
	"github.com/alkime/dictate/internal/config"
	"github.com/alkime/dictate/internal/keyring"
	"github.com/alkime/dictate/internal/logger"
	"github.com/alkime/dictate/internal/profile"
	"github.com/alkime/dictate/internal/workdir"
)

// CLI defines the dictate command structure.
type CLI struct {
	// Default command (runs when no subcommand given)
	Run RunCmd `cmd:"" default:"withargs" help:"Launch the dictation UI"`

	// Subcommands
	Devices  DevicesCmd  `cmd:"" help:"List available audio capture devices"`
	Profiles ProfilesCmd `cmd:"" help:"List configured formatting profiles"`
	Config   ConfigCmd   `cmd:"" help:"Manage configuration"`
}

// RunCmd is the default command that runs the dictation UI.
type RunCmd struct {
	Profile         string `flag:"" optional:"" help:"Active formatting profile (overrides ACTIVE_PROFILE)"`
	ControlServer   bool   `flag:"" optional:"" help:"Expose the local HTTP control server"`
	OpenAIAPIKey    string `flag:"" env:"OPENAI_API_KEY" help:"OpenAI API key for transcription"`
	AnthropicAPIKey string `flag:"" env:"ANTHROPIC_API_KEY" help:"Anthropic API key for formatting"`
}

// Run executes the dictation UI.
func (c *RunCmd) Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if c.Profile != "" {
		cfg.ActiveProfile = c.Profile
	}

	if c.ControlServer {
		cfg.ControlServer = true
	}

	log := logger.SetupLogger(cfg)

	keys, err := resolveKeys(c.OpenAIAPIKey, c.AnthropicAPIKey)
	if err != nil {
		return err
	}

	engine, err := app.New(cfg, log, keys)
	if err != nil {
		return err
	}

	return engine.Run(context.Background())
}

// resolveKeys fills missing API keys from the system keychain.
func resolveKeys(openAI, anthropic string) (app.Keys, error) {
	if openAI == "" {
		if secret, err := keyring.Get(keyring.OpenAI); err == nil {
			openAI = secret
		} else {
			slog.Debug("keychain lookup failed", "key", "openai", "error", err)
		}
	}

	if anthropic == "" {
		if secret, err := keyring.Get(keyring.Anthropic); err == nil {
			anthropic = secret
		} else {
			slog.Debug("keychain lookup failed", "key", "anthropic", "error", err)
		}
	}

	var missing []string
	if openAI == "" {
		missing = append(missing, "openai")
	}

	if anthropic == "" {
		missing = append(missing, "anthropic")
	}

	if len(missing) > 0 {
		return app.Keys{}, fmt.Errorf("missing API keys: %s. Set via environment variables or run 'dictate config set-key'",
			strings.Join(missing, ", "))
	}

	return app.Keys{OpenAI: openAI, Anthropic: anthropic}, nil
}

// DevicesCmd lists available audio devices.
type DevicesCmd struct{}

// Run executes the devices command.
func (dcmd *DevicesCmd) Run() error {
	slog.Info("Enumerating audio devices...")

	adev := audio.NewDevice(nil)
	devices, err := adev.EnumerateDevices(context.Background())
	if err != nil {
		return fmt.Errorf("failed to enumerate audio devices: %w", err)
	}

	for _, dev := range devices {
		slog.Info("Audio Device",
			"name", dev.Name,
			"isDefault", dev.IsDefault,
			"formatCount", dev.FormatCount,
			"formats", dev.Formats,
		)
	}

	return nil
}

// ProfilesCmd lists the configured formatting profiles.
type ProfilesCmd struct{}

// Run executes the profiles command.
func (c *ProfilesCmd) Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := workdir.Prep(); err != nil {
		return fmt.Errorf("failed to prepare working directory: %w", err)
	}

	profilesPath, err := workdir.ProfilesPath()
	if err != nil {
		return err
	}

	manager, err := profile.NewManager(profile.NewStore(profilesPath), cfg.ActiveProfile)
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}

	for _, p := range manager.All() {
		marker := " "
		if p.ID == manager.Active() {
			marker = "*"
		}

		mode := "gpt"
		if p.SkipFormatting {
			mode = "raw"
		}

		fmt.Printf("%s %-12s %-20s [%s]\n", marker, p.ID, p.Name, mode)
	}

	return nil
}

// ConfigCmd groups configuration-related subcommands.
type ConfigCmd struct {
	SetKey   SetKeyCmd   `cmd:"" help:"Store an API key in system keychain"`
	ListKeys ListKeysCmd `cmd:"" name:"list-keys" help:"Show which API keys are configured"`
}

// SetKeyCmd stores an API key in the system keychain.
type SetKeyCmd struct {
	Service string `arg:"" enum:"openai,anthropic" help:"Service name (openai or anthropic)"`
	Secret  string `arg:"" help:"API key value"`
}

// Run executes the set-key command.
func (c *SetKeyCmd) Run() error {
	if strings.TrimSpace(c.Secret) == "" {
		return errors.New("API key cannot be empty")
	}

	apiKey, err := keyring.APIKeyFromServiceName(c.Service)
	if err != nil {
		return fmt.Errorf("invalid service: %w", err)
	}

	if err := keyring.Set(apiKey, c.Secret); err != nil {
		return fmt.Errorf("failed to store API key: %w", err)
	}

	fmt.Printf("%s API key stored in keychain\n", c.Service)

	return nil
}

// ListKeysCmd shows which API keys are configured.
type ListKeysCmd struct{}

// Run executes the list-keys command.
//
//nolint:unparam // error return required by Kong interface
func (c *ListKeysCmd) Run() error {
	allSet := true

	for _, apiKey := range keyring.AllAPIKeys() {
		if keyring.IsSet(apiKey) {
			fmt.Printf("%s: configured\n", apiKey.DisplayName())
		} else {
			fmt.Printf("%s: not set\n", apiKey.DisplayName())
			allSet = false
		}
	}

	if !allSet {
		fmt.Println("\nRun 'dictate config set-key <service> <key>' to configure.")
	}

	return nil
}

func main() {
	// Set up text-based logger for CLI output
	//nolint:exhaustruct // Using default values for other HandlerOptions fields
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))

	cli := &CLI{} //nolint:exhaustruct // Kong fills in command fields
	ctx := kong.Parse(cli)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
