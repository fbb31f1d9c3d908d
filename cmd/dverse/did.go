package main

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/dversehq/dverse"
	"github.com/dversehq/dverse/dverseconfig"
	"github.com/spf13/cobra"
)

var didCmd = &cobra.Command{
	Use:   "did",
	Short: "DID inspection commands",
}

var didShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the selected identity's DID",
	RunE:  runDidShow,
}

var didResolveCmd = &cobra.Command{
	Use:   "resolve <did-or-alias>",
	Short: "Resolve a DID or pinned alias to its public key",
	Args:  cobra.ExactArgs(1),
	RunE:  runDidResolve,
}

func init() {
	didCmd.AddCommand(didShowCmd)
	didCmd.AddCommand(didResolveCmd)
	rootCmd.AddCommand(didCmd)
}

func runDidShow(cmd *cobra.Command, args []string) error {
	_, sel := mustResolve()
	if sel.DID == "" {
		return fmt.Errorf("identity %q has no DID configured", sel.Name)
	}
	did := dverse.FromString(sel.DID)
	pub, err := did.PublicKey()
	if err != nil {
		return fmt.Errorf("configured DID is invalid: %w", err)
	}
	fmt.Printf("DID:         %s\n", did)
	fmt.Printf("public key:  %s\n", hex.EncodeToString(pub))
	fmt.Printf("fingerprint: %s\n", pub.Fingerprint())
	return nil
}

func runDidResolve(cmd *cobra.Command, args []string) error {
	// No identity selection needed — resolution works on foreign DIDs.
	cfg, err := dverseconfig.LoadGlobal()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	pins, _ := mustOpenPinStore(cfg)

	resolver := &dverse.ChainResolver{
		DID: &dverse.DIDResolver{},
		Pin: &dverse.PinResolver{Store: pins},
	}
	identity, err := resolver.Resolve(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("DID:         %s\n", identity.DID)
	if identity.Alias != "" {
		fmt.Printf("alias:       %s\n", identity.Alias)
	}
	if identity.Handle != "" {
		fmt.Printf("handle:      %s\n", identity.Handle)
	}
	fmt.Printf("public key:  %s\n", hex.EncodeToString(identity.PublicKey))
	fmt.Printf("fingerprint: %s\n", identity.PublicKey.Fingerprint())
	fmt.Printf("via:         %s\n", identity.ResolvedVia)
	return nil
}
