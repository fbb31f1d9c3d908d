package main

import (
	"fmt"
	"sort"

	"github.com/dversehq/dverse"
	"github.com/dversehq/dverse/dverseconfig"
	"github.com/spf13/cobra"
)

var pinCmd = &cobra.Command{
	Use:   "pin",
	Short: "Manage TOFU identity pins",
}

var pinListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pinned identities",
	RunE:  runPinList,
}

var pinAddCmd = &cobra.Command{
	Use:   "add <alias> <did>",
	Short: "Pin a DID under an alias",
	Args:  cobra.ExactArgs(2),
	RunE:  runPinAdd,
}

var pinAddHandle string

func init() {
	pinAddCmd.Flags().StringVar(&pinAddHandle, "handle", "", "Display handle for the pinned identity")
	pinCmd.AddCommand(pinListCmd)
	pinCmd.AddCommand(pinAddCmd)
	rootCmd.AddCommand(pinCmd)
}

func runPinList(cmd *cobra.Command, args []string) error {
	cfg, err := dverseconfig.LoadGlobal()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	pins, _ := mustOpenPinStore(cfg)

	if len(pins.Pins) == 0 {
		fmt.Println("No pins.")
		return nil
	}

	dids := make([]string, 0, len(pins.Pins))
	for did := range pins.Pins {
		dids = append(dids, did)
	}
	sort.Strings(dids)

	for _, did := range dids {
		pin := pins.Pins[did]
		fmt.Printf("%s\n", did)
		fmt.Printf("  alias:      %s\n", pin.Alias)
		if pin.Handle != "" {
			fmt.Printf("  handle:     %s\n", pin.Handle)
		}
		if pin.Fingerprint != "" {
			fmt.Printf("  fingerprint: %s\n", pin.Fingerprint)
		}
		fmt.Printf("  first seen: %s\n", pin.FirstSeen)
		fmt.Printf("  last seen:  %s\n", pin.LastSeen)
	}
	return nil
}

func runPinAdd(cmd *cobra.Command, args []string) error {
	alias, didStr := args[0], args[1]

	did := dverse.FromString(didStr)
	// Pin only identities we can actually verify against.
	if _, err := did.PublicKey(); err != nil {
		return fmt.Errorf("refusing to pin: %w", err)
	}

	cfg, err := dverseconfig.LoadGlobal()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	pins, path := mustOpenPinStore(cfg)

	switch pins.CheckPin(alias, did) {
	case dverse.PinMismatch:
		return fmt.Errorf("alias %q is already pinned to a different DID (%s)", alias, pins.Aliases[alias])
	case dverse.PinOK:
		fmt.Printf("Already pinned: %s -> %s\n", alias, did)
	}

	pins.StorePin(did, alias, pinAddHandle)
	if err := pins.Save(path); err != nil {
		return fmt.Errorf("save pin store: %w", err)
	}

	fmt.Printf("Pinned %s -> %s\n", alias, did)
	return nil
}
