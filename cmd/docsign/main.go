/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"
	"os"

	"code.cloudfoundry.org/clock"
	"github.com/inconshreveable/log15"
	"github.com/spf13/cobra"
	"github.com/zhigui-projects/go-docsign/common/crypto"
	"github.com/zhigui-projects/go-docsign/common/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultMessage = "Bob, this is Alice. DC Morrison sends his best wishes to you."

type config struct {
	message   string
	tamper    string
	hash      string
	bits      int
	logFormat string
	verbose   bool
	errorDir  string
}

func newRootCmd() *cobra.Command {
	cfg := &config{}
	cmd := &cobra.Command{
		Use:   "docsign",
		Short: "Sign a document as Alice and verify it as Bob.",
		Long: `Run the full exchange: Alice hashes and signs a document, the envelope is handed
to Bob, who verifies the signature with Alice's public key and recomputes the digest.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("trailing args detected")
			}
			// Parsing of the command line is done so silence cmd usage
			cmd.SilenceUsage = true

			logger, closer, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer closer()
			log.SetLogger(logger)

			return run(cfg, cmd.OutOrStdout(), logger, clock.NewClock())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.message, "message", "m", defaultMessage, "plaintext Alice sends to Bob")
	flags.StringVar(&cfg.tamper, "tamper", tamperNone, "modify the envelope in transit: none, document or signature")
	flags.StringVar(&cfg.hash, "hash", "sha384", "digest algorithm: sha384 or sha3-384")
	flags.IntVar(&cfg.bits, "bits", crypto.DefaultKeyBits, "rsa modulus size in bits")
	flags.StringVar(&cfg.logFormat, "log-format", "terminal", "narration format: terminal or json")
	flags.BoolVarP(&cfg.verbose, "verbose", "v", false, "narrate every step of the exchange")
	flags.StringVar(&cfg.errorDir, "error-log", "", "directory receiving error records as json")
	return cmd
}

func newLogger(cfg *config) (log.Logger, func(), error) {
	level := "warn"
	if cfg.verbose {
		level = "debug"
	}

	switch cfg.logFormat {
	case "json":
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if cfg.verbose {
			zc.Level.SetLevel(zapcore.DebugLevel)
		}
		var opts []zap.Option
		closeFile := func() error { return nil }
		if cfg.errorDir != "" {
			fileCore, closer, err := log.NewErrorFileCore(cfg.errorDir, zc.EncoderConfig)
			if err != nil {
				return nil, nil, err
			}
			closeFile = closer
			opts = append(opts, zap.WrapCore(func(c zapcore.Core) zapcore.Core {
				return zapcore.NewTee(c, fileCore)
			}))
		}
		zl, err := zc.Build(opts...)
		if err != nil {
			_ = closeFile()
			return nil, nil, err
		}
		zlog := log.NewZapLogger(zl)
		return zlog.New("app", "docsign"), func() {
			_ = zlog.Sync()
			_ = closeFile()
		}, nil
	case "terminal":
		h, err := log.NewHandler(log.HandlerOptions{Level: level, Terminal: true, ErrorDir: cfg.errorDir})
		if err != nil {
			return nil, nil, err
		}
		l := log15.New("app", "docsign")
		l.SetHandler(h)
		return &log.DefaultLogger{Logger: l}, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown log format [%s]", cfg.logFormat)
}

func main() {
	// On failure Cobra prints the usage message and error string, so we only
	// need to exit with a non-0 status
	if newRootCmd().Execute() != nil {
		os.Exit(1)
	}
}
