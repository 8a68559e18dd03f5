package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"LocalSketch/internal/config"
	sketchnet "LocalSketch/internal/net"
	"LocalSketch/internal/state"
	"LocalSketch/internal/ui"
)

// Set at build time with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	var configPath string
	var port int
	cmd := &cobra.Command{
		Use:   "localsketch [link]",
		Short: "Grid sketch editor with CAD-style trim, shared over the LAN",
		Long: `LocalSketch places points, lines and circles on a snapped grid and trims
them against each other.

With no arguments it hosts a new drawing. Given a localsketch:// link it joins
the drawing at that address, so the binary can be registered as the handler
for the link scheme.`,
		Version:      fmt.Sprintf("%s (commit: %s)", version, commit),
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runJoin(cmd, configPath, args[0])
			}
			return runHost(cmd, configPath, port, false)
		},
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML configuration file (default $"+config.EnvPath+")")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Sync port (overrides sync.port)")
	cmd.AddCommand(
		buildHostCmd(&configPath),
		buildJoinCmd(&configPath),
		buildDiscoverCmd(&configPath),
		buildVersionCmd(),
	)
	return cmd
}

func buildHostCmd(configPath *string) *cobra.Command {
	var port int
	var offline bool
	cmd := &cobra.Command{
		Use:   "host",
		Short: "Start a new drawing and share it on the LAN",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHost(cmd, *configPath, port, offline)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Sync port (overrides sync.port)")
	cmd.Flags().BoolVar(&offline, "offline", false, "Do not accept peers or advertise")
	return cmd
}

func buildJoinCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "join [link]",
		Short: "Join a drawing hosted on the LAN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJoin(cmd, *configPath, args[0])
		},
	}
}

func buildDiscoverCmd(configPath *string) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List drawings advertised on the LAN",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiscover(cmd, *configPath, timeout)
		},
	}
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 3*time.Second, "How long to listen for hosts")
	return cmd
}

func buildVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "localsketch %s (commit: %s)\n", version, commit)
		},
	}
}

func setup(configPath string) (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, cfg.Logger(), nil
}

func runHost(cmd *cobra.Command, configPath string, port int, offline bool) error {
	cfg, log, err := setup(configPath)
	if err != nil {
		return err
	}
	if port != 0 {
		cfg.Sync.Port = port
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := sketchnet.NewHub(state.NewEditor(log), log)
	share := ""
	if !offline {
		share = sketchnet.ShareLink(cfg.Sync.Scheme, sketchnet.OutgoingIP(), cfg.Sync.Port)
		log.WithFields(logrus.Fields{"link": share, "drawing": hub.Drawing()}).Info("hosting drawing")
		if cfg.Sync.Advertise {
			server, err := sketchnet.Advertise(cfg.Sync.Service, cfg.Sync.Port, hub.Drawing())
			if err != nil {
				log.WithError(err).Warn("mDNS advertising disabled")
			} else {
				defer server.Shutdown()
			}
		}
	}

	ui.RunApp(ui.Options{
		Title:   "LocalSketch",
		Share:   share,
		Drawing: hub,
		Config:  cfg,
		Log:     log,
		Attach: func(b *ui.BoardWidget) {
			hub.OnDiff = b.ApplyDiff
			if offline {
				return
			}
			go func() {
				if err := hub.ListenAndServe(ctx, cfg.Sync.Port); err != nil {
					log.WithError(err).Error("sync hub stopped")
					b.SetStatus(fmt.Sprintf("Sharing unavailable: %v", err))
				}
			}()
		},
	})
	return nil
}

func runJoin(cmd *cobra.Command, configPath, link string) error {
	cfg, log, err := setup(configPath)
	if err != nil {
		return err
	}
	addr, err := sketchnet.ParseLink(cfg.Sync.Scheme, link)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	client, err := sketchnet.Dial(dialCtx, addr, log)
	cancel()
	if err != nil {
		return err
	}
	defer client.Close()
	log.WithField("host", addr).Info("joined drawing")

	ui.RunApp(ui.Options{
		Title:   "LocalSketch - " + addr,
		Drawing: client,
		Config:  cfg,
		Log:     log,
		Attach: func(b *ui.BoardWidget) {
			client.OnDiff = b.ApplyDiff
			client.OnError = func(e *sketchnet.RemoteError) {
				b.SetStatus(fmt.Sprintf("Host rejected %s: %s", e.Request, e.Message))
			}
			go func() {
				if err := client.Run(ctx); err != nil {
					log.WithError(err).Warn("connection lost")
					b.SetStatus(fmt.Sprintf("Disconnected from host: %v", err))
					return
				}
				b.SetStatus("Disconnected from host")
			}()
		},
	})
	return nil
}

func runDiscover(cmd *cobra.Command, configPath string, timeout time.Duration) error {
	cfg, _, err := setup(configPath)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	seen := map[string]bool{}
	err = sketchnet.Browse(cmd.Context(), cfg.Sync.Service, timeout, func(addr string) {
		if seen[addr] {
			return
		}
		seen[addr] = true
		fmt.Fprintf(out, "%s\t%s%s\n", addr, cfg.Sync.Scheme, addr)
	})
	if err != nil {
		return fmt.Errorf("discover: %w", err)
	}
	if len(seen) == 0 {
		fmt.Fprintln(out, "No drawings found.")
	}
	return nil
}
