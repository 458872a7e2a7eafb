package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
)

// Shell is the interactive mode: it keeps a profile and runs requests
// against it on demand.
type Shell struct {
	fetcher *Fetcher
	profile Profile
	rl      *readline.Instance
}

// NewShell creates a shell starting from profile.
func NewShell(fetcher *Fetcher, profile Profile) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "nio> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	fetcher.out = rl.Stdout()
	return &Shell{fetcher: fetcher, profile: profile, rl: rl}, nil
}

// Stdout returns a writer that coordinates with the readline prompt.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Run reads commands until quit, EOF or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		if !s.exec(ctx, strings.ToLower(parts[0]), parts[1:], line) {
			return
		}
	}
}

// exec runs one command and reports whether the shell should continue.
func (s *Shell) exec(ctx context.Context, cmd string, args []string, line string) bool {
	out := s.rl.Stdout()

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "get", "post":
		p := s.profile
		p.Method = strings.ToUpper(cmd)
		if len(args) > 0 {
			p.URL = args[0]
		}
		if cmd == "post" && len(args) > 1 {
			p.Body = strings.Join(args[1:], " ")
		}
		if err := s.fetcher.Fetch(ctx, p); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}

	case "url":
		if len(args) != 1 {
			fmt.Fprintln(out, "Usage: url <url>")
			break
		}
		s.profile.URL = args[0]

	case "header", "h":
		s.cmdHeader(args, line)

	case "timeout":
		if len(args) != 1 {
			fmt.Fprintf(out, "Timeout: %s\n", s.profile.Timeout)
			break
		}
		d, err := time.ParseDuration(args[0])
		if err != nil {
			fmt.Fprintf(out, "Invalid duration: %v\n", err)
			break
		}
		s.profile.Timeout = d

	case "mode":
		if len(args) != 1 || (args[0] != "elapsed" && args[0] != "per-wait") {
			fmt.Fprintln(out, "Usage: mode elapsed|per-wait")
			break
		}
		s.profile.PerWait = args[0] == "per-wait"

	case "retries":
		n := 0
		var err error
		if len(args) == 1 {
			n, err = strconv.Atoi(args[0])
		}
		if len(args) != 1 || err != nil || n < 0 {
			fmt.Fprintln(out, "Usage: retries <n>")
			break
		}
		s.profile.Retries = n

	case "show":
		s.printProfile()

	case "quit", "exit", "q":
		fmt.Fprintln(out, "Exiting...")
		return false

	default:
		fmt.Fprintf(out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (s *Shell) cmdHeader(args []string, line string) {
	out := s.rl.Stdout()
	if len(args) == 0 {
		fmt.Fprintln(out, "Usage: header <Name: value> | header -<Name>")
		return
	}
	if name, ok := strings.CutPrefix(args[0], "-"); ok && len(args) == 1 {
		delete(s.profile.Headers, name)
		return
	}
	_, rest, _ := strings.Cut(line, " ")
	name, value, err := parseHeader(rest)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}
	if s.profile.Headers == nil {
		s.profile.Headers = make(map[string]string)
	}
	s.profile.Headers[name] = value
}

func (s *Shell) printProfile() {
	out := s.rl.Stdout()
	mode := "elapsed"
	if s.profile.PerWait {
		mode = "per-wait"
	}
	fmt.Fprintf(out, "URL:     %s\n", s.profile.URL)
	fmt.Fprintf(out, "Timeout: %s (%s)\n", s.profile.Timeout, mode)
	fmt.Fprintf(out, "Retries: %d\n", s.profile.Retries)
	for k, v := range s.profile.Headers {
		fmt.Fprintf(out, "Header:  %s: %s\n", k, v)
	}
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.rl.Stdout(), `
Commands:
  get [url]            - GET the url (or the current one)
  post [url] [body]    - POST body to the url
  url <url>            - Set the current url
  header <Name: value> - Add a request header (header -Name removes it)
  timeout [duration]   - Show or set the timeout, e.g. 5s
  mode elapsed|per-wait - Select timeout accounting
  retries <n>          - Connect retries
  show                 - Show the current settings
  quit                 - Exit`)
}
