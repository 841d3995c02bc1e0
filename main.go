package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/czerwonk/zone_resolver/config"

	"github.com/alecthomas/kingpin/v2"
	log "github.com/sirupsen/logrus"
)

const version string = "0.1.0"

var (
	showVersion     = kingpin.Flag("version", "Print version information").Default().Bool()
	listenAddress   = kingpin.Flag("web.listen-address", "Address on which to serve lookup requests").Default("").String()
	shutdownTimeout = kingpin.Flag("web.shutdown-timeout", "Time to wait for in-flight requests on shutdown").Default("30s").Duration()
	configFile      = kingpin.Flag("config.path", "Path to config file").Default("").String()
	dnsNameServer   = kingpin.Flag("dns.nameserver", "DNS server used to resolve FQDNs (empty: system resolver)").Default("").String()
	logLevel        = kingpin.Flag("log.level", "Only log messages with the given severity or above. Valid levels: [debug, info, warn, error, fatal]").Default("info").String()
)

const defaultPort = 8082

func main() {
	kingpin.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	setupLogging(*logLevel)

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	setLogLevel(cfg.Log.Level)

	table, err := newZoneTable(defaultSubnets)
	if err != nil {
		log.Fatalf("Failed to load subnet information: %v", err)
	}
	log.Infof("Successfully loaded %d subnet mappings", len(defaultSubnets))

	resolver := setupResolver(cfg.DNS.Nameserver)
	srv := newServer(table, resolver, newMetrics(table))

	startServer(srv, cfg)
}

func printVersion() {
	fmt.Println("zone-resolver")
	fmt.Printf("Version: %s\n", version)
	fmt.Println("HTTP service mapping FQDNs to availability zones")
}

func startServer(srv *server, cfg *config.Config) {
	log.Infof("Starting zone resolver (Version: %s)", version)

	// The signal handler only dispatches the shutdown; draining happens in
	// the serve loop below so the handler can never deadlock it.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Infof("Received signal %s. Shutting down gracefully...", sig)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout.Duration())
		defer cancel()
		if err := srv.shutdown(ctx); err != nil {
			log.Errorf("Shutdown did not complete cleanly: %v", err)
		}
	}()

	log.Infof("Listening on %s", cfg.Web.Listen)
	if err := srv.listenAndServe(cfg.Web.Listen); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
	log.Infoln("Server has shut down")
}

func loadConfig() (*config.Config, error) {
	cfg := &config.Config{}

	if *configFile != "" {
		f, err := os.Open(*configFile)
		if err != nil {
			return nil, fmt.Errorf("cannot load config file: %w", err)
		}
		defer f.Close()

		cfg, err = config.FromYAML(f)
		if err != nil {
			return nil, err
		}
	}

	addFlagToConfig(cfg)

	// The PORT environment variable takes precedence over flag and file,
	// matching the container deployment contract.
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT environment variable %q: %w", port, err)
		}
		cfg.Web.Listen = fmt.Sprintf(":%d", p)
	}

	if cfg.Web.Listen == "" {
		cfg.Web.Listen = fmt.Sprintf(":%d", defaultPort)
	}

	return cfg, nil
}

// addFlagToConfig updates cfg with command line flag values, unless the
// config has non-zero values.
func addFlagToConfig(cfg *config.Config) {
	if cfg.Web.Listen == "" {
		cfg.Web.Listen = *listenAddress
	}
	if cfg.Web.ShutdownTimeout == 0 {
		cfg.Web.ShutdownTimeout.Set(*shutdownTimeout)
	}
	if cfg.DNS.Nameserver == "" {
		cfg.DNS.Nameserver = *dnsNameServer
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = *logLevel
	}
}
