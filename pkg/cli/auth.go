package cli

import (
	"fmt"
	"log/slog"

	urfave "github.com/urfave/cli/v2"
	"github.com/zalando/go-keyring"

	"github.com/mchmarny/modelscore/pkg/config"
)

const (
	keyringService = "modelscore"

	keyringGenAIKey    = "genai_api_key"
	keyringGitHubToken = "github_token"
	keyringHubToken    = "hf_token"
)

var (
	genaiKeyFlag = &urfave.StringFlag{
		Name:  "genai-key",
		Usage: "GenAI API key used for license classification",
	}

	githubTokenFlag = &urfave.StringFlag{
		Name:  "github-token",
		Usage: "GitHub access token used to lift API rate limits",
	}

	hubTokenFlag = &urfave.StringFlag{
		Name:  "hf-token",
		Usage: "Hugging Face access token used to lift API rate limits",
	}

	authCmd = &urfave.Command{
		Name:            "auth",
		HideHelpCommand: true,
		Usage:           "Manage credentials stored in the OS keychain",
		Subcommands: []*urfave.Command{
			{
				Name:   "set",
				Usage:  "Save one or more credentials to the OS keychain",
				Action: cmdAuthSet,
				Flags: []urfave.Flag{
					genaiKeyFlag,
					githubTokenFlag,
					hubTokenFlag,
				},
			},
			{
				Name:   "clear",
				Usage:  "Remove all stored credentials from the OS keychain",
				Action: cmdAuthClear,
			},
		},
	}
)

func cmdAuthSet(c *urfave.Context) error {
	saved := 0
	pairs := []struct {
		flag string
		user string
	}{
		{genaiKeyFlag.Name, keyringGenAIKey},
		{githubTokenFlag.Name, keyringGitHubToken},
		{hubTokenFlag.Name, keyringHubToken},
	}

	for _, p := range pairs {
		v := c.String(p.flag)
		if v == "" {
			continue
		}
		if err := keyring.Set(keyringService, p.user, v); err != nil {
			return fmt.Errorf("saving %s to keychain: %w", p.flag, err)
		}
		saved++
	}

	if saved == 0 {
		return fmt.Errorf("nothing to save, provide --%s, --%s, or --%s",
			genaiKeyFlag.Name, githubTokenFlag.Name, hubTokenFlag.Name)
	}

	fmt.Printf("%d credential(s) saved to OS keychain\n", saved)
	return nil
}

func cmdAuthClear(_ *urfave.Context) error {
	for _, user := range []string{keyringGenAIKey, keyringGitHubToken, keyringHubToken} {
		if err := keyring.Delete(keyringService, user); err != nil {
			slog.Debug("keychain entry not removed", "user", user, "error", err)
		}
	}
	fmt.Println("Stored credentials cleared")
	return nil
}

// loadSecrets fills config secrets missing from the environment with
// values from the OS keychain. A missing keychain entry is a skip.
func loadSecrets(cfg *config.Config) {
	if cfg.GenAIKey == "" {
		if v, err := keyring.Get(keyringService, keyringGenAIKey); err == nil {
			cfg.GenAIKey = v
		}
	}
	if cfg.GitHubToken == "" {
		if v, err := keyring.Get(keyringService, keyringGitHubToken); err == nil {
			cfg.GitHubToken = v
		}
	}
	if cfg.HubToken == "" {
		if v, err := keyring.Get(keyringService, keyringHubToken); err == nil {
			cfg.HubToken = v
		}
	}
}
