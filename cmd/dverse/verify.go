package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"github.com/dversehq/dverse"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify a signature against a DID",
	Long:  "Verify a base64 signature over a message (from --message, --file, or stdin) against the public key embedded in a did:dverse DID.",
	RunE:  runVerify,
}

var (
	verifyDID       string
	verifySignature string
	verifyMessage   string
	verifyFile      string
)

func init() {
	verifyCmd.Flags().StringVar(&verifyDID, "did", "", "Signer's did:dverse DID (default: selected identity's DID)")
	verifyCmd.Flags().StringVar(&verifySignature, "signature", "", "Signature as base64, no padding (required)")
	verifyCmd.Flags().StringVar(&verifyMessage, "message", "", "Message that was signed")
	verifyCmd.Flags().StringVar(&verifyFile, "file", "", "File whose contents were signed")

	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	if verifySignature == "" {
		fmt.Fprintln(os.Stderr, "Missing signature (use --signature)")
		os.Exit(2)
	}

	didStr := verifyDID
	if didStr == "" {
		_, sel := mustResolve()
		didStr = sel.DID
	}
	if didStr == "" {
		fmt.Fprintln(os.Stderr, "Missing DID (use --did, or configure an identity)")
		os.Exit(2)
	}

	pub, err := dverse.FromString(didStr).PublicKey()
	if err != nil {
		return fmt.Errorf("decode DID: %w", err)
	}

	sig, err := base64.RawStdEncoding.DecodeString(verifySignature)
	if err != nil {
		return fmt.Errorf("decode signature: %w", err)
	}

	msg, err := readMessageInput(verifyMessage, verifyFile)
	if err != nil {
		return err
	}

	if err := dverse.VerifierFor(pub).Verify(msg, sig); err != nil {
		if errors.Is(err, dverse.ErrSignatureVerification) {
			fmt.Println("Verification FAILED")
			os.Exit(1)
		}
		return err
	}

	fmt.Println("Verified")
	return nil
}
