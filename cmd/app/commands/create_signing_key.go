package commands

import (
	"context"
	"fmt"
	"io"

	eventsService "github.com/allisson/trustregistry/internal/events/service"
)

// RunCreateSigningKey generates a random event signing key and prints it as
// environment lines. With kmsKeyURI the key is encrypted by the KMS keeper
// before output, and only the ciphertext is printed.
//
// For local development use a localsecrets URI ("base64key://<32-byte-base64-key>").
// hashivault:// URIs are supported for Vault transit keys.
func RunCreateSigningKey(ctx context.Context, writer io.Writer, kmsKeyURI string) error {
	encoded, err := eventsService.GenerateSigningKey(ctx, kmsKeyURI)
	if err != nil {
		return err
	}

	if kmsKeyURI == "" {
		_, _ = fmt.Fprintln(writer, "# Plain key: keep it out of version control")
	} else {
		_, _ = fmt.Fprintln(writer, "# KMS mode: the key below is encrypted")
		_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=%q\n", kmsKeyURI)
	}
	_, _ = fmt.Fprintf(writer, "EVENT_SIGNING_KEY=%q\n", encoded)
	return nil
}
