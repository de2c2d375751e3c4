package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jpillora/backoff"
	"github.com/spf13/cobra"
)

func newAppendCmd() *cobra.Command {
	var maxRetries int

	cmd := &cobra.Command{
		Use:   "append <journal> <data>",
		Short: "Append data to a journal, retrying if the writer is busy",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := cmd.Flags().GetString("addr")
			if err != nil {
				return err
			}
			return runAppend(addr, args[0], args[1], maxRetries)
		},
	}
	cmd.Flags().IntVar(&maxRetries, "max-retries", 5, "maximum retry attempts on a busy writer")
	return cmd
}

// runAppend posts one append request, retrying with exponential backoff
// whenever the daemon reports the writer is currently busy or locked
// (HTTP 409). This mirrors the spec's guidance that WriterBusy is
// transient and the caller, not the pool, owns the retry policy.
func runAppend(addr, journal, data string, maxRetries int) error {
	b := &backoff.Backoff{
		Min:    50 * time.Millisecond,
		Max:    2 * time.Second,
		Factor: 2,
		Jitter: true,
	}

	reqURL := fmt.Sprintf("%s/append?journal=%s&data=%s",
		addr, url.QueryEscape(journal), url.QueryEscape(data))

	for attempt := 0; ; attempt++ {
		resp, err := http.Post(reqURL, "application/octet-stream", nil)
		if err != nil {
			return fmt.Errorf("append request: %w", err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			fmt.Println(string(body))
			return nil
		}
		if resp.StatusCode != http.StatusConflict || attempt >= maxRetries {
			return fmt.Errorf("append failed (status %d): %s", resp.StatusCode, body)
		}

		wait := b.Duration()
		fmt.Printf("writer busy, retrying in %s (attempt %d/%d)\n", wait, attempt+1, maxRetries)
		time.Sleep(wait)
	}
}
