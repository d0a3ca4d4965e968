// Package main grants or revokes the catalog admin claim on a Firebase user.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"storefront/internal/infrastructure/firebase"
	"storefront/pkg/config"
)

func main() {
	var uid string
	var revoke bool

	flag.StringVar(&uid, "uid", "", "Firebase user id to update")
	flag.BoolVar(&revoke, "revoke", false, "remove the admin claim instead of granting it")
	flag.Parse()

	if uid == "" {
		fmt.Fprintln(os.Stderr, "Error: -uid is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadFirebase()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	opts, err := firebase.ClientOptions(cfg.FirebaseServiceAccountJSON, cfg.FirebaseServiceAccountPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	client, err := firebase.NewFirebaseAuthClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := client.SetAdmin(ctx, uid, !revoke); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if revoke {
		fmt.Printf("Revoked admin claim for %s\n", uid)
	} else {
		fmt.Printf("Granted admin claim to %s\n", uid)
	}
}
