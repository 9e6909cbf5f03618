// Command noncectl is a small CLI front end for the nonce factory
// registry: initialize a factory, mint a nonce from it, and decode or
// inspect an existing one. It is a convenience wrapper around the
// package API, not a server.
package main

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/nonceforge/nonce"
	nonceconfig "github.com/nonceforge/nonce/config"
	"github.com/nonceforge/nonce/strenc"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "noncectl",
		Short: "Inspect and drive the nonce factory registry",
	}

	root.AddCommand(newInitCmd())
	root.AddCommand(newGenCmd())
	root.AddCommand(newInfoCmd())
	root.AddCommand(newDecodeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newInitCmd() *cobra.Command {
	var (
		name      string
		machineID uint16
		config    string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a factory, either from flags or a config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if config != "" {
				cfg, err := nonceconfig.Load(config)
				if err != nil {
					return err
				}
				return nonceconfig.InitAll(cfg)
			}
			if name == "" {
				name = uuid.NewString()
			}
			if err := nonce.Init(nonce.WithName(name), nonce.WithMachineID(machineID)); err != nil {
				return err
			}
			fmt.Println(name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "factory name (random UUID if omitted)")
	cmd.Flags().Uint16Var(&machineID, "machine-id", 0, "9-bit machine ID (0-511)")
	cmd.Flags().StringVar(&config, "config", "", "load factories from a JSON/YAML config file instead")
	return cmd
}

func newGenCmd() *cobra.Command {
	var (
		name     string
		width    int
		variant  string
		encoding string
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate one nonce from a factory",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				b   []byte
				err error
			)
			switch variant {
			case "counter":
				b, err = nonce.Nonce(name, width)
			case "sortable":
				b, err = nonce.SortableNonce(name, width)
			case "encrypted":
				b, err = nonce.EncryptedNonce(name, width, nonce.BaseCounter)
			case "encrypted-sortable":
				b, err = nonce.EncryptedNonce(name, width, nonce.BaseSortable)
			default:
				return fmt.Errorf("unknown variant %q", variant)
			}
			if err != nil {
				return err
			}
			fmt.Println(formatBytes(b, encoding))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "factory name")
	cmd.Flags().IntVar(&width, "width", 64, "nonce width: 64, 96, or 128")
	cmd.Flags().StringVar(&variant, "variant", "counter", "counter, sortable, encrypted, or encrypted-sortable")
	cmd.Flags().StringVar(&encoding, "encoding", "hex", "hex, base64, base58, or crockford")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newInfoCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show a factory's identity and raw counter state, or list all factories",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				for _, n := range nonce.Names() {
					fmt.Println(n)
				}
				return nil
			}
			info, err := nonce.Lookup(name)
			if err != nil {
				return err
			}
			stats, err := nonce.Stats(name)
			if err != nil {
				return err
			}
			fmt.Printf("name:       %s\n", info.Name)
			fmt.Printf("machine_id: %d\n", info.MachineID)
			fmt.Printf("epoch_ms:   %d\n", info.EpochMs)
			fmt.Printf("init_at_ms: %d\n", info.InitAtMs)
			fmt.Printf("counter:    %d\n", stats.Counter)
			fmt.Printf("sortable:   ts=%d count=%d\n", stats.SortableTimestampMs, stats.SortableCount)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "factory name (omit to list all)")
	return cmd
}

func newDecodeCmd() *cobra.Command {
	var (
		name     string
		width    int
		encoding string
	)
	cmd := &cobra.Command{
		Use:   "decode <value>",
		Short: "Decompose a counter or sortable nonce into timestamp/machine-id/counter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := parseBytes(args[0], encoding, width)
			if err != nil {
				return err
			}
			info, err := nonce.Inspect(name, width, b)
			if err != nil {
				return err
			}
			fmt.Printf("timestamp:  %s\n", info.Timestamp.Format("2006-01-02T15:04:05.000Z07:00"))
			fmt.Printf("machine_id: %d\n", info.MachineID)
			fmt.Printf("counter:    %d\n", info.Counter)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "factory name (for its epoch)")
	cmd.Flags().IntVar(&width, "width", 64, "nonce width: 64, 96, or 128")
	cmd.Flags().StringVar(&encoding, "encoding", "hex", "hex, base64, base58, or crockford")
	cmd.MarkFlagRequired("name")
	return cmd
}

func formatBytes(b []byte, encoding string) string {
	switch encoding {
	case "base64":
		return base64.StdEncoding.EncodeToString(b)
	case "base58":
		return strenc.EncodeBase58(b)
	case "crockford":
		return strenc.EncodeCrockford(b)
	default:
		return hex.EncodeToString(b)
	}
}

func parseBytes(s, encoding string, width int) ([]byte, error) {
	byteLen := width / 8
	switch encoding {
	case "base64":
		return base64.StdEncoding.DecodeString(s)
	case "base58":
		return strenc.DecodeBase58(s, byteLen)
	case "crockford":
		return strenc.DecodeCrockford(s, byteLen)
	default:
		return hex.DecodeString(s)
	}
}
