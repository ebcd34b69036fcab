package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/LoL-Fantome/binmeta/hashes"
)

func newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash NAME...",
		Short: "Compute the stable 32-bit hash of one or more names",
		Long:  "Hashes each name with the container format's lowercase FNV-1a function, the same hash that keys classes, properties and object paths.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				fmt.Fprintf(cmd.OutOrStdout(), "0x%08x %s\n", hashes.Lower(name), name)
			}
			return nil
		},
	}
}

func newLookupCmd() *cobra.Command {
	var dictPath string

	cmd := &cobra.Command{
		Use:   "lookup HASH...",
		Short: "Resolve hashes back to names through a dictionary",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			dict, err := hashes.LoadYAMLFile(dictPath)
			if err != nil {
				return err
			}
			logger.Debugf("loaded %d names from %s", dict.Len(), dictPath)
			for _, arg := range args {
				h, err := strconv.ParseUint(arg, 0, 32)
				if err != nil {
					return fmt.Errorf("bad hash %q: %w", arg, err)
				}
				name, ok := dict.Name(uint32(h))
				if !ok {
					name = "<unknown>"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "0x%08x %s\n", uint32(h), name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dictPath, "dict", "", "YAML name dictionary (required)")
	_ = cmd.MarkFlagRequired("dict")
	return cmd
}
