// brewctl is a small client for the brewd HTTP API.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
)

var (
	addr    string
	natsURL string
)

func main() {
	root := &cobra.Command{
		Use:           "brewctl",
		Short:         "Control a brewd coffee machine daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&addr, "addr", "http://localhost:8080", "brewd base URL")
	root.PersistentFlags().StringVar(&natsURL, "nats", "", "NATS URL to echo CLI events to")

	root.AddCommand(statusCmd(), recipesCmd(), brewCmd(), fillCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show container levels and the last machine message",
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON("/status")
		},
	}
}

func recipesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recipes",
		Short: "List the drinks the machine can brew",
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON("/recipes")
		},
	}
}

func brewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "brew <recipe>",
		Short: "Brew a drink (e.g. espresso, double_espresso, americano, ristretto)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipe := args[0]
			route := strings.ReplaceAll(recipe, "_", "-")
			if err := postJSON("/coffee/"+route, nil); err != nil {
				return err
			}
			echoEvent(map[string]any{"event": "cli.brew", "drink": recipe})
			return nil
		},
	}
}

func fillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Refill a container",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "water <ml>",
			Short: "Add water in millilitres",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				amount, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("amount must be an integer: %w", err)
				}
				return postJSON("/containers/water/fill", map[string]int{"amount_ml": amount})
			},
		},
		&cobra.Command{
			Use:   "coffee <g>",
			Short: "Add coffee grounds in grams",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				amount, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("amount must be an integer: %w", err)
				}
				return postJSON("/containers/coffee/fill", map[string]int{"amount_g": amount})
			},
		},
	)
	return cmd
}

func getJSON(path string) error {
	resp, err := http.Get(addr + path)
	if err != nil {
		return err
	}
	return printResponse(resp)
}

func postJSON(path string, body any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	resp, err := http.Post(addr+path, "application/json", &buf)
	if err != nil {
		return err
	}
	return printResponse(resp)
}

// printResponse pretty-prints the body and turns non-2xx statuses into
// an error so the process exits non-zero.
func printResponse(resp *http.Response) error {
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		pretty.Write(data)
	}
	fmt.Println(pretty.String())
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s", resp.Status)
	}
	return nil
}

// echoEvent mirrors successful CLI actions onto NATS when requested.
func echoEvent(ev map[string]any) {
	if natsURL == "" {
		return
	}
	nc, err := nats.Connect(natsURL, nats.Timeout(2*time.Second))
	if err != nil {
		fmt.Fprintln(os.Stderr, "nats:", err)
		return
	}
	defer nc.Drain()
	payload, _ := json.Marshal(ev)
	_ = nc.Publish("cli.events", payload)
}
