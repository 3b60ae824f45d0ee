package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"refsign/internal/engine/referrals"
	"refsign/internal/platform/config"
	"refsign/internal/pkg/logger"
)

type options struct {
	configPath string
	referralID string
	createdAt  int64
	hasCreated bool
	baseURL    string
	send       bool
	json       bool
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil {
		log.Error().Err(err).Msg("signurl failed")
		stop()
		os.Exit(1)
	}
}

func parseFlags(args []string, output io.Writer) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("signurl", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.configPath, "config", "configs/config.yaml", "Path to config file")
	fs.StringVar(&opts.referralID, "referral", "", "Referral ID to sign (required)")
	fs.Int64Var(&opts.createdAt, "created-at", 0, "Creation time in Unix milliseconds (default: now)")
	fs.StringVar(&opts.baseURL, "base-url", "", "Referral endpoint URL (overrides config)")
	fs.BoolVar(&opts.send, "send", false, "Send a GET request to the signed URL")
	fs.BoolVar(&opts.json, "json", false, "Print the signed link as JSON")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "created-at" {
			opts.hasCreated = true
		}
	})
	if opts.referralID == "" {
		fmt.Fprintln(output, "-referral flag required")
		fs.Usage()
		return nil, errors.New("missing -referral")
	}
	return opts, nil
}

func run(ctx context.Context, opts *options, out io.Writer) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.baseURL != "" {
		cfg.Referral.BaseURL = opts.baseURL
	}

	logger.Init(cfg.Logging)

	if err := cfg.Validate(); err != nil {
		return err
	}

	svc := referrals.NewService(cfg.Referral)

	var link *referrals.SignedLink
	if opts.hasCreated {
		link, err = svc.SignAt(opts.referralID, opts.createdAt)
	} else {
		link, err = svc.Sign(opts.referralID, time.Time{})
	}
	if err != nil {
		return err
	}

	var delivery *referrals.Delivery
	if opts.send {
		delivery, err = referrals.NewSender(cfg.Sender).Send(ctx, link)
		if err != nil {
			return err
		}
	}

	if opts.json {
		return printJSON(out, link, delivery)
	}
	printText(out, link, delivery)
	return nil
}

func printText(out io.Writer, link *referrals.SignedLink, delivery *referrals.Delivery) {
	fmt.Fprintf(out, "Referral ID: %s\n", link.ReferralID)
	fmt.Fprintf(out, "Created At (Unix): %d\n", link.CreatedAt)
	fmt.Fprintf(out, "Signature String: %s\n", link.CanonicalString)
	fmt.Fprintf(out, "Signature: %s\n", link.Signature)
	fmt.Fprintf(out, "\nSigned URL: %s\n", link.URL)
	if delivery != nil {
		fmt.Fprintf(out, "\nDelivery: %s (HTTP %d in %s)\n", delivery.ID, delivery.StatusCode, delivery.Duration)
	}
}

func printJSON(out io.Writer, link *referrals.SignedLink, delivery *referrals.Delivery) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		*referrals.SignedLink
		Delivery *referrals.Delivery `json:"delivery,omitempty"`
	}{link, delivery})
}
