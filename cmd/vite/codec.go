package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joestump/vite/internal/config"
	"github.com/joestump/vite/internal/shortid"
)

// newCodec builds the codec and, when a passphrase is set, the obfuscator.
func newCodec(cfg *config.Config) (*shortid.Codec, *shortid.Obfuscator, error) {
	cs, err := shortid.NewCharset(cfg.Charset)
	if err != nil {
		return nil, nil, fmt.Errorf("charset: %w", err)
	}
	if cfg.Passphrase == "" {
		return shortid.NewCodec(cs), nil, nil
	}
	obf, err := shortid.NewObfuscator(cs, cfg.Passphrase)
	if err != nil {
		return nil, nil, fmt.Errorf("VITE_OBFUSCATION_PASSPHRASE: %w", err)
	}
	return shortid.NewCodec(cs), obf, nil
}

func newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <id>",
		Short: "Print the short identifier for a numeric id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("id must be a non-negative integer: %w", err)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			codec, obf, err := newCodec(cfg)
			if err != nil {
				return err
			}

			ident := codec.Encode(n)
			if obf != nil {
				if ident, err = obf.Transform(ident); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), cfg.Domain()+ident)
			return nil
		},
	}
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <short-id>",
		Short: "Print the numeric id behind a short identifier or link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			codec, obf, err := newCodec(cfg)
			if err != nil {
				return err
			}

			ident := strings.TrimPrefix(args[0], cfg.Domain())
			ident = strings.TrimPrefix(ident, cfg.ShortHost())
			if obf != nil {
				if ident, err = obf.Restore(ident); err != nil {
					return err
				}
			}
			n, err := codec.Decode(ident)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}
