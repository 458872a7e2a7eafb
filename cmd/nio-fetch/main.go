// nio-fetch performs one HTTP/1.1 request over the non-blocking transport
// and prints the response with timestamps.
//
// Usage:
//
//	nio-fetch [flags] [url]
//
// Examples:
//
//	# Fetch a page
//	nio-fetch https://example.com/
//
//	# POST with a header and a short timeout, retrying the connect
//	nio-fetch -post -data 'a=1' -H 'Content-Type: application/x-www-form-urlencoded' \
//	    -timeout 5s -retries 3 http://localhost:8080/submit
//
//	# Trust a self-signed server by its leaf fingerprint and record a protocol log
//	nio-fetch -pin ab:cd:... -protocol-log fetch.nlog https://device.local:8443/
//
//	# Load a request profile, then continue interactively
//	nio-fetch -config request.yaml -interactive
package main

import (
	"context"
	"flag"
	"fmt"
	stdlog "log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/easycrab/nio-go/pkg/log"
)

type cliFlags struct {
	configFile  string
	url         string
	method      string
	post        bool
	data        string
	headers     headerFlags
	timeout     time.Duration
	perWait     bool
	insecure    bool
	pins        pinFlags
	caFile      string
	serverName  string
	retries     int
	protocolLog string
	maxBody     int
	logLevel    string
	interactive bool
}

// pinFlags collects repeated -pin flags.
type pinFlags []string

func (p *pinFlags) String() string { return strings.Join(*p, ",") }

func (p *pinFlags) Set(s string) error {
	*p = append(*p, s)
	return nil
}

func newFlagSet(f *cliFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("nio-fetch", flag.ContinueOnError)
	f.headers = make(headerFlags)
	fs.StringVar(&f.configFile, "config", "", "YAML request profile")
	fs.StringVar(&f.url, "url", "", "Target URL (or first argument)")
	fs.StringVar(&f.method, "method", "GET", "Request method: GET, POST")
	fs.BoolVar(&f.post, "post", false, "Shorthand for -method POST")
	fs.StringVar(&f.data, "data", "", "POST body")
	fs.Var(f.headers, "H", "Request header \"Name: value\" (repeatable)")
	fs.DurationVar(&f.timeout, "timeout", 30*time.Second, "Timeout per call (0 waits indefinitely)")
	fs.BoolVar(&f.perWait, "per-wait", false, "Apply the timeout to every socket wait instead of every call")
	fs.BoolVar(&f.insecure, "insecure", false, "Accept any server certificate")
	fs.Var(&f.pins, "pin", "Accepted SHA-256 leaf fingerprint in hex (repeatable)")
	fs.StringVar(&f.caFile, "ca", "", "PEM file with trusted root certificates")
	fs.StringVar(&f.serverName, "server-name", "", "Server name for SNI and verification")
	fs.IntVar(&f.retries, "retries", 0, "Connect retries with backoff")
	fs.StringVar(&f.protocolLog, "protocol-log", "", "Write protocol events to this file ("+log.FileExtension+")")
	fs.IntVar(&f.maxBody, "max-body", DefaultMaxBody, "Body bytes to print")
	fs.StringVar(&f.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	fs.BoolVar(&f.interactive, "interactive", false, "Start an interactive shell after loading the profile")
	return fs
}

// buildProfile loads the profile file, if any, and applies every flag that
// was set explicitly on top of it.
func buildProfile(fs *flag.FlagSet, f *cliFlags) (Profile, error) {
	p := DefaultProfile()
	if f.configFile != "" {
		var err error
		if p, err = LoadProfile(f.configFile); err != nil {
			return p, err
		}
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "url":
			p.URL = f.url
		case "method":
			p.Method = strings.ToUpper(f.method)
		case "post":
			if f.post {
				p.Method = "POST"
			}
		case "data":
			p.Body = f.data
		case "H":
			for k, v := range f.headers {
				p.Headers[k] = v
			}
		case "timeout":
			p.Timeout = f.timeout
		case "per-wait":
			p.PerWait = f.perWait
		case "insecure":
			p.Insecure = f.insecure
		case "pin":
			p.Pins = append(p.Pins, f.pins...)
		case "ca":
			p.CAFile = f.caFile
		case "server-name":
			p.ServerName = f.serverName
		case "retries":
			p.Retries = f.retries
		case "protocol-log":
			p.ProtocolLog = f.protocolLog
		case "max-body":
			p.MaxBody = f.maxBody
		}
	})
	if fs.NArg() > 0 {
		p.URL = fs.Arg(0)
	}
	return p, nil
}

func main() {
	var f cliFlags
	fs := newFlagSet(&f)
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	stdlog.SetFlags(stdlog.Ltime | stdlog.Lmicroseconds)
	logger := setupLogging(f.logLevel)

	profile, err := buildProfile(fs, &f)
	if err != nil {
		stdlog.Fatalf("Failed to load profile: %v", err)
	}

	protocolLogger, closeLog, err := setupProtocolLog(profile.ProtocolLog, logger)
	if err != nil {
		stdlog.Fatalf("Failed to open protocol log: %v", err)
	}
	defer closeLog()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fetcher := NewFetcher(os.Stdout, logger, protocolLogger)

	if f.interactive {
		shell, err := NewShell(fetcher, profile)
		if err != nil {
			stdlog.Fatalf("Failed to start interactive mode: %v", err)
		}
		// Keep log output from tearing the prompt.
		stdlog.SetOutput(shell.Stdout())
		shell.Run(ctx)
		return
	}

	if err := fetcher.Fetch(ctx, profile); err != nil {
		closeLog()
		stdlog.Fatalf("Fetch failed: %v", err)
	}
}

func setupLogging(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
		stdlog.SetFlags(stdlog.Ltime | stdlog.Lmicroseconds | stdlog.Lshortfile)
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// setupProtocolLog opens the protocol log file. At debug level events are
// also mirrored to the operational logger.
func setupProtocolLog(path string, logger *slog.Logger) (log.Logger, func(), error) {
	var loggers []log.Logger
	closeLog := func() {}

	if path != "" {
		fl, err := log.NewFileLogger(path)
		if err != nil {
			return nil, closeLog, err
		}
		loggers = append(loggers, fl)
		closeLog = func() {
			if n := fl.Dropped(); n > 0 {
				stdlog.Printf("Warning: %d protocol events could not be written", n)
			}
			if err := fl.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "close protocol log: %v\n", err)
			}
		}
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		loggers = append(loggers, log.NewSlogAdapter(logger))
	}

	switch len(loggers) {
	case 0:
		return nil, closeLog, nil
	case 1:
		return loggers[0], closeLog, nil
	default:
		return log.NewMultiLogger(loggers...), closeLog, nil
	}
}
