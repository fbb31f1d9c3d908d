package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dversehq/dverse"
	"github.com/dversehq/dverse/dverseconfig"
	"github.com/joho/godotenv"
)

func loadDotenvBestEffort() {
	// Best effort: load from current working directory.
	_ = godotenv.Load()
	_ = godotenv.Overload(".env.dverse")
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func mustDefaultGlobalPath() string {
	path, err := dverseconfig.DefaultGlobalPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return path
}

// mustResolve loads the global config and selects an identity per the
// --identity flag, DVERSE_IDENTITY, or the configured default.
func mustResolve() (*dverseconfig.GlobalConfig, *dverseconfig.Selection) {
	cfg, err := dverseconfig.LoadGlobal()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to read config:", err)
		os.Exit(2)
	}
	sel, err := dverseconfig.Resolve(cfg, dverseconfig.ResolveOptions{
		IdentityName:      identityFlag,
		AllowEnvOverrides: true,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return cfg, sel
}

// mustLoadKeyPair loads the selected identity's signing key pair.
func mustLoadKeyPair(sel *dverseconfig.Selection) *dverse.KeyPair {
	if sel.SigningKey == "" {
		fmt.Fprintf(os.Stderr, "Identity %q has no signing key configured. Run `dverse keygen` first.\n", sel.Name)
		os.Exit(2)
	}
	kp, err := dverseconfig.LoadKeyPair(sel.SigningKey)
	if err != nil {
		fatal(fmt.Errorf("load signing key: %w", err))
	}
	return kp
}

// mustOpenPinStore loads the pin store referenced by the config.
func mustOpenPinStore(cfg *dverseconfig.GlobalConfig) (*dverse.PinStore, string) {
	path := dverseconfig.PinStorePath(cfg, mustDefaultGlobalPath())
	ps, err := dverse.LoadPinStore(path)
	if err != nil {
		fatal(fmt.Errorf("load pin store: %w", err))
	}
	return ps, path
}

// readMessageInput returns the message bytes from --message, --file, or
// stdin, in that priority order.
func readMessageInput(message, file string) ([]byte, error) {
	if message != "" {
		return []byte(message), nil
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		return data, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return data, nil
}
