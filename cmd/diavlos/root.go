package main

import (
	"fmt"
	"os"
	"time"

	"github.com/KilimcininKorOglu/diavlos/internal/config"
	"github.com/KilimcininKorOglu/diavlos/internal/logging"
	"github.com/KilimcininKorOglu/diavlos/internal/output"
	"github.com/KilimcininKorOglu/diavlos/internal/sockopen"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Flags
	forceIPv4  bool
	forceIPv6  bool
	sourceIP   string
	ifaceName  string
	count      int
	workers    int
	jsonOutput bool
	verbose    bool
	noColor    bool
	logLevel   string

	// Config file
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "diavlos [flags]",
	Short: "Raw ICMP socket opener",
	Long: `Diavlos (Δίαυλος) - Privileged ICMP socket initialization

Diavlos asynchronously opens raw ICMP sockets, optionally bound to a
source address and restricted to a source network interface, and reports
the resulting file descriptor or a structured failure. It is the
substrate for ping and traceroute tooling; it never sends packets itself.

Opening raw ICMP sockets requires elevated privileges (root, or
CAP_NET_RAW on Linux).

Examples:
  diavlos                          Open an IPv4 ICMP socket
  diavlos -6                       Open an IPv6 ICMP socket
  diavlos -s 192.0.2.5             Bind the socket to a source address
  diavlos -i eth0                  Restrict the socket to an interface
  diavlos -c 8 --workers 4         Open 8 sockets through 4 workers
  diavlos --json                   JSON output
  diavlos interfaces               List bindable network interfaces
  diavlos config --init            Create default config file`,
	Args:              cobra.NoArgs,
	PersistentPreRunE: loadConfig,
	RunE:              runOpen,
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ~/.config/diavlos/config.yaml)")

	// Family flags
	rootCmd.Flags().BoolVarP(&forceIPv4, "ipv4", "4", false, "Open an IPv4 socket (default)")
	rootCmd.Flags().BoolVarP(&forceIPv6, "ipv6", "6", false, "Open an IPv6 socket")

	// Network settings
	rootCmd.Flags().StringVarP(&sourceIP, "source", "s", "", "Source address to bind the socket to")
	rootCmd.Flags().StringVarP(&ifaceName, "interface", "i", "", "Source interface to restrict the socket to")

	// Worker pool
	rootCmd.Flags().IntVarP(&count, "count", "c", 1, "Number of open requests to submit")
	rootCmd.Flags().IntVar(&workers, "workers", 0, "Worker goroutines executing requests")

	// Output flags
	rootCmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed table output")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(interfacesCmd)
}

// loadConfig loads configuration from file and applies defaults
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error

	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	} else {
		cfg, err = config.Load()
		if err != nil {
			cfg = config.DefaultConfig()
		}
	}

	applyConfigDefaults(cmd)

	return nil
}

// applyConfigDefaults applies config file values for unset flags
func applyConfigDefaults(cmd *cobra.Command) {
	if cfg == nil {
		return
	}

	defaults := cfg.Defaults

	// Family from config
	if !cmd.Flags().Changed("ipv4") && !cmd.Flags().Changed("ipv6") && defaults.Family == "inet6" {
		forceIPv6 = true
	}

	// Network settings from config
	if !cmd.Flags().Changed("source") && defaults.Source != "" {
		sourceIP = defaults.Source
	}
	if !cmd.Flags().Changed("interface") && defaults.Interface != "" {
		ifaceName = defaults.Interface
	}
	if !cmd.Flags().Changed("workers") && defaults.Workers > 0 {
		workers = defaults.Workers
	}

	// Output mode from config
	if !cmd.Flags().Changed("json") && defaults.JSON {
		jsonOutput = true
	}
	if !cmd.Flags().Changed("verbose") && defaults.Verbose {
		verbose = true
	}
	if !cmd.Flags().Changed("no-color") && defaults.NoColor {
		noColor = true
	}
	if !cmd.Flags().Changed("log-level") && logLevel == "" {
		logLevel = defaults.LogLevel
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Diavlos %s\n", version)
		fmt.Printf("  Library: %s\n", sockopen.Version)
		fmt.Printf("  Commit:  %s\n", commit)
		fmt.Printf("  Built:   %s\n", date)
		fmt.Printf("  Config:  %s\n", config.GetConfigPath())
	},
}

var interfacesCmd = &cobra.Command{
	Use:   "interfaces",
	Short: "List bindable network interfaces",
	RunE: func(cmd *cobra.Command, args []string) error {
		ifaces, err := output.ListInterfaces()
		if err != nil {
			return fmt.Errorf("failed to list interfaces: %w", err)
		}

		os.Stdout.Write(output.InterfaceTable(ifaces, output.Config{Colors: !noColor}))
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage Diavlos configuration file.

Commands:
  diavlos config --init     Create default config file
  diavlos config --show     Show current configuration
  diavlos config --path     Show config file path`,
	RunE: runConfig,
}

var (
	configInit bool
	configShow bool
	configPath bool
)

func init() {
	configCmd.Flags().BoolVar(&configInit, "init", false, "Create default config file")
	configCmd.Flags().BoolVar(&configShow, "show", false, "Show current configuration")
	configCmd.Flags().BoolVar(&configPath, "path", false, "Show config file path")
}

func runConfig(cmd *cobra.Command, args []string) error {
	if configPath {
		fmt.Println(config.GetConfigPath())
		return nil
	}

	if configInit {
		path := config.GetConfigPath()

		// Check if file already exists
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s", path)
		}

		cfg := config.DefaultConfig()
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to create config: %w", err)
		}

		fmt.Printf("Created config file: %s\n", path)
		return nil
	}

	if configShow {
		fmt.Println(config.GenerateExample())
		return nil
	}

	// No flag specified, show help
	return cmd.Help()
}

// completion is one delivered open outcome plus its wall time.
type completion struct {
	err  error
	fd   int
	took time.Duration
}

func runOpen(cmd *cobra.Command, args []string) error {
	if forceIPv4 && forceIPv6 {
		return fmt.Errorf("cannot force both IPv4 and IPv6")
	}
	if count < 1 {
		return fmt.Errorf("count must be at least 1")
	}
	if noColor {
		color.NoColor = true
	}

	family := sockopen.AFInet
	if forceIPv6 {
		family = sockopen.AFInet6
	}

	opener, err := sockopen.NewOpener(sockopen.Config{
		Workers: workers,
		Queue:   count,
		Logger:  logging.New(logLevel, "text"),
	})
	if err != nil {
		return err
	}

	completions := make(chan completion, count)
	for i := 0; i < count; i++ {
		start := time.Now()
		err := opener.Open(family, sourceIP, ifaceName, func(err error, fd int) {
			completions <- completion{err: err, fd: fd, took: time.Since(start)}
		})
		if err != nil {
			// Validation failure: synchronous, nothing was queued.
			opener.Close()
			return err
		}
	}

	report := &output.Report{
		Family:    family.String(),
		Source:    sourceIP,
		Interface: ifaceName,
		Timestamp: time.Now(),
	}

	for i := 0; i < count; i++ {
		c := <-completions
		report.Results = append(report.Results, output.NewResult(c.err, c.fd, c.took))

		// The CLI only demonstrates the open; hand the descriptor back.
		if c.err == nil {
			sockopen.NewSocket(c.fd, family).Close()
		}
	}

	if err := opener.Close(); err != nil {
		return err
	}

	writer := output.NewWriter(reportFormat(), output.Config{Colors: !noColor})
	if err := writer.Write(report); err != nil {
		return err
	}

	if report.Succeeded() == 0 {
		return fmt.Errorf("all %d open requests failed", len(report.Results))
	}
	return nil
}

// reportFormat picks the output format from the flags.
func reportFormat() output.Format {
	switch {
	case jsonOutput:
		return output.FormatJSON
	case verbose:
		return output.FormatVerbose
	default:
		return output.FormatText
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets version information for the CLI.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}
