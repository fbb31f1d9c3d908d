package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dversehq/dverse"
	"github.com/dversehq/dverse/dverseconfig"
	"github.com/spf13/cobra"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a new Ed25519 identity",
	Long:  "Generate a new Ed25519 keypair, derive its did:dverse DID, save the keys as PEM files, and register the identity in the global config.",
	RunE:  runKeygen,
}

var (
	keygenName       string
	keygenHandle     string
	keygenSetDefault bool
)

func init() {
	keygenCmd.Flags().StringVar(&keygenName, "name", "", "Identity name (required)")
	keygenCmd.Flags().StringVar(&keygenHandle, "handle", "", "Display handle, e.g. @alice")
	keygenCmd.Flags().BoolVar(&keygenSetDefault, "set-default", false, "Set this identity as default_identity")

	rootCmd.AddCommand(keygenCmd)
}

func runKeygen(cmd *cobra.Command, args []string) error {
	if keygenName == "" {
		fmt.Fprintln(os.Stderr, "Missing identity name (use --name)")
		os.Exit(2)
	}

	configPath := mustDefaultGlobalPath()

	// Refuse early, before any key material lands on disk.
	existing, err := dverseconfig.LoadGlobalFrom(configPath)
	if err != nil {
		fatal(err)
	}
	if _, exists := existing.Identities[keygenName]; exists {
		fatal(fmt.Errorf("identity %q already exists in config", keygenName))
	}

	kp, err := dverse.Generate()
	if err != nil {
		fatal(err)
	}
	did := dverse.FromPublicKey(kp.Public)

	keysDir := dverseconfig.KeysDir(configPath)

	if err := dverseconfig.SaveKeypair(keysDir, keygenName, kp); err != nil {
		fatal(fmt.Errorf("save keypair: %w", err))
	}
	keyPath := dverseconfig.SigningKeyPath(keysDir, keygenName)

	// Config update last: the keys are on disk before anything points at them.
	if err := dverseconfig.UpdateGlobalAt(configPath, func(cfg *dverseconfig.GlobalConfig) error {
		cfg.Identities[keygenName] = dverseconfig.IdentityConfig{
			DID:        did.String(),
			SigningKey: keyPath,
			Handle:     keygenHandle,
			CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		}
		if keygenSetDefault || cfg.DefaultIdentity == "" {
			cfg.DefaultIdentity = keygenName
		}
		return nil
	}); err != nil {
		fatal(err)
	}

	fmt.Printf("Identity created.\n")
	fmt.Printf("  name:        %s\n", keygenName)
	fmt.Printf("  DID:         %s\n", did)
	fmt.Printf("  fingerprint: %s\n", kp.Public.Fingerprint())
	fmt.Printf("  signing key: %s\n", keyPath)

	return nil
}
