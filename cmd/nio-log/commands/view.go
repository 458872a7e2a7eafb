package commands

import (
	"crypto/tls"
	"encoding/hex"
	"fmt"
	"io"
	"slices"

	"github.com/easycrab/nio-go/pkg/log"
)

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [conn:id] DIRECTION LAYER Type
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [conn:%s] %-3s %s %s\n",
		ts, shortenConnID(event.ConnectionID), event.Direction.String(), event.Layer.String(), eventType(event))

	switch {
	case event.Data != nil:
		formatDataDetails(w, event.Data)
	case event.Handshake != nil:
		formatHandshakeDetails(w, event.Handshake)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.HTTP != nil:
		formatHTTPDetails(w, event.HTTP)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w)
}

// eventType returns the label of the payload the event carries.
func eventType(event log.Event) string {
	switch {
	case event.Data != nil:
		return "Data"
	case event.Handshake != nil:
		return "Handshake"
	case event.StateChange != nil:
		return "State"
	case event.HTTP != nil:
		return event.HTTP.Type.String()
	case event.Error != nil:
		return "Error"
	default:
		return "Unknown"
	}
}

// shortenConnID returns the first 8 characters of the connection ID.
func shortenConnID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatDataDetails(w io.Writer, data *log.DataEvent) {
	fmt.Fprintf(w, "  Size: %d bytes\n", data.Size)
	if len(data.Data) > 0 {
		fmt.Fprintf(w, "  Data: %s", hex.EncodeToString(data.Data))
		if data.Truncated {
			fmt.Fprintf(w, " (truncated)")
		}
		fmt.Fprintln(w)
	}
}

func formatHandshakeDetails(w io.Writer, hs *log.HandshakeEvent) {
	fmt.Fprintf(w, "  Step: %s\n", hs.Step)
	if hs.Bytes > 0 {
		fmt.Fprintf(w, "  Bytes: %d\n", hs.Bytes)
	}
	if hs.Version != 0 {
		fmt.Fprintf(w, "  Version: %s\n", log.VersionName(hs.Version))
	}
	if hs.CipherSuite != 0 {
		fmt.Fprintf(w, "  Cipher: %s\n", tls.CipherSuiteName(hs.CipherSuite))
	}
	if hs.ServerName != "" {
		fmt.Fprintf(w, "  ServerName: %s\n", hs.ServerName)
	}
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	fmt.Fprintf(w, "  Entity: %s\n", sc.Entity.String())
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatHTTPDetails(w io.Writer, msg *log.HTTPEvent) {
	switch msg.Type {
	case log.MessageTypeRequest:
		fmt.Fprintf(w, "  %s %s\n", msg.Method, msg.Path)
	case log.MessageTypeResponse:
		fmt.Fprintf(w, "  Status: %d %s\n", msg.StatusCode, msg.Reason)
		if msg.Chunked {
			fmt.Fprintln(w, "  Body: chunked")
		} else if msg.ContentLength >= 0 {
			fmt.Fprintf(w, "  Body: %d bytes\n", msg.ContentLength)
		}
	}

	names := make([]string, 0, len(msg.Headers))
	for k := range msg.Headers {
		names = append(names, k)
	}
	slices.Sort(names)
	for _, k := range names {
		fmt.Fprintf(w, "  %s: %s\n", k, msg.Headers[k])
	}
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", err.Layer.String())
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// RunView executes the view command.
func RunView(path string, filter log.Filter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}
}
