package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"contentgate/internal/config"
	"contentgate/internal/domain/models/content"
	"contentgate/internal/service/trust"
)

// errRejected makes the process exit non-zero when a value fails a check.
var errRejected = errors.New("rejected")

type cli struct {
	policyFile string
	verbose    bool
	in         io.Reader
	out        io.Writer
	errOut     io.Writer
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	c := &cli{in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "gatectl",
		Short:         "Check CMS content against the trust policy",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&c.policyFile, "policy", "", "trust policy YAML file (default: environment)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log rejections to stderr")

	root.AddCommand(
		c.urlCmd("image-url", "Validate an image URL against the image host allow-list", (*trust.Gateway).ValidateImageURL),
		c.urlCmd("file-url", "Validate a file URL against the file CDN host", (*trust.Gateway).ValidateFileURL),
		c.resolveCmd(),
		c.sanitizeHTMLCmd(),
		c.sanitizeLinkCmd(),
	)
	return root
}

// gateway builds the gateway from --policy, or from the environment when unset.
func (c *cli) gateway() (*trust.Gateway, error) {
	var (
		policy config.TrustPolicy
		err    error
	)
	if c.policyFile != "" {
		policy, err = config.LoadTrustPolicy(c.policyFile)
	} else {
		policy, err = config.Load().ResolvePolicy()
	}
	if err != nil {
		return nil, err
	}

	level := slog.LevelError
	if c.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(c.errOut, &slog.HandlerOptions{Level: level}))
	return trust.New(policy, logger), nil
}

func (c *cli) urlCmd(use, short string, check func(*trust.Gateway, string) (string, bool)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <url>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.gateway()
			if err != nil {
				return err
			}
			u, ok := check(g, args[0])
			if !ok {
				fmt.Fprintln(c.out, "rejected")
				return errRejected
			}
			fmt.Fprintln(c.out, u)
			return nil
		},
	}
}

func (c *cli) resolveCmd() *cobra.Command {
	var asFile bool

	cmd := &cobra.Command{
		Use:   "resolve <json>",
		Short: "Resolve a media reference as the renderer would",
		Example: `  gatectl resolve '{"asset":{"_ref":"image-abc-800x600-jpg"}}'
  gatectl resolve --file '{"_ref":"file-abc-pdf"}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := content.ParseMediaReference([]byte(args[0]))
			if err != nil {
				return err
			}
			g, err := c.gateway()
			if err != nil {
				return err
			}

			var res trust.Resolution
			if asFile {
				res = g.ResolveFile(ref)
			} else {
				res = g.ResolveImage(ref)
			}

			report := map[string]interface{}{
				"status": res.Status.String(),
				"kind":   res.Kind.String(),
			}
			if res.OK() {
				report["url"] = res.URL
			}
			if res.Err != nil {
				report["error"] = res.Err.Error()
			}
			enc := json.NewEncoder(c.out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
			if res.Status == trust.StatusMalformed || res.Status == trust.StatusRejected {
				return errRejected
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asFile, "file", false, "resolve as a downloadable file instead of an image")
	return cmd
}

func (c *cli) sanitizeHTMLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sanitize-html [file]",
		Short: "Sanitize rich-text HTML from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := c.in
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				src = f
			}

			dirty, err := io.ReadAll(io.LimitReader(src, config.MaxHTMLInputBytes+1))
			if err != nil {
				return err
			}
			if len(dirty) > config.MaxHTMLInputBytes {
				return fmt.Errorf("input exceeds %d bytes", config.MaxHTMLInputBytes)
			}

			g, err := c.gateway()
			if err != nil {
				return err
			}
			_, err = io.WriteString(c.out, g.SanitizeHTML(string(dirty)))
			return err
		},
	}
}

func (c *cli) sanitizeLinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sanitize-link <url>",
		Short: `Print a safe href for a link, "#" when rejected`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.gateway()
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, g.SanitizeLinkURL(args[0]))
			return nil
		},
	}
}
