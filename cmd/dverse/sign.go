package main

import (
	"encoding/base64"
	"fmt"

	"github.com/spf13/cobra"
)

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign a message with the selected identity's key",
	Long:  "Sign a message (from --message, --file, or stdin) with the selected identity's Ed25519 key and print the signature as base64 (RFC 4648, no padding).",
	RunE:  runSign,
}

var (
	signMessage string
	signFile    string
)

func init() {
	signCmd.Flags().StringVar(&signMessage, "message", "", "Message to sign")
	signCmd.Flags().StringVar(&signFile, "file", "", "File whose contents to sign")

	rootCmd.AddCommand(signCmd)
}

func runSign(cmd *cobra.Command, args []string) error {
	_, sel := mustResolve()
	kp := mustLoadKeyPair(sel)

	msg, err := readMessageInput(signMessage, signFile)
	if err != nil {
		return err
	}

	sig, err := kp.Sign(msg)
	if err != nil {
		return fmt.Errorf("sign: %w", err)
	}

	fmt.Println(base64.RawStdEncoding.EncodeToString(sig))
	return nil
}
