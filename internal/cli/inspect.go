package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LoL-Fantome/binmeta"
	"github.com/LoL-Fantome/binmeta/binjson"
	"github.com/LoL-Fantome/binmeta/hashes"
)

func newInspectCmd() *cobra.Command {
	var dictPath string

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the structure of a property tree from its JSON projection",
		Long:  "Reads a property tree in the binjson projection and prints one line per node, resolving class, property and path hashes through the dictionary when one is supplied.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			node, err := binjson.Unmarshal(data)
			if err != nil {
				return err
			}

			var dict *hashes.Dict
			if dictPath != "" {
				dict, err = hashes.LoadYAMLFile(dictPath)
				if err != nil {
					return err
				}
				logger.Debugf("loaded %d names from %s", dict.Len(), dictPath)
			}

			printNode(cmd.OutOrStdout(), node, dict, "", 0)
			return nil
		},
	}

	cmd.Flags().StringVar(&dictPath, "dict", "", "YAML name dictionary for resolving hashes")
	return cmd
}

func printNode(w io.Writer, n *binmeta.Node, dict *hashes.Dict, label string, depth int) {
	indent := strings.Repeat("  ", depth)
	if label != "" {
		label += " = "
	}
	switch n.Kind() {
	case binmeta.KindObject:
		fmt.Fprintf(w, "%s%sobject %s: %s\n", indent, label, dict.Format(n.PathHash()), dict.Format(n.ClassHash()))
		printProps(w, n, dict, depth+1)
	case binmeta.KindStruct, binmeta.KindEmbedded:
		fmt.Fprintf(w, "%s%s%s %s\n", indent, label, n.Kind(), dict.Format(n.ClassHash()))
		printProps(w, n, dict, depth+1)
	case binmeta.KindContainer, binmeta.KindUnorderedContainer:
		fmt.Fprintf(w, "%s%s%s<%s> (%d items)\n", indent, label, n.Kind(), n.ElemKind(), len(n.Items()))
		for i, it := range n.Items() {
			printNode(w, it, dict, fmt.Sprintf("[%d]", i), depth+1)
		}
	case binmeta.KindMap:
		fmt.Fprintf(w, "%s%smap<%s, %s> (%d entries)\n", indent, label, n.KeyKind(), n.ValueKind(), len(n.Pairs()))
		for _, p := range n.Pairs() {
			printNode(w, p.Value, dict, p.Key.String(), depth+1)
		}
	case binmeta.KindOptional:
		if !n.OptionalPresent() {
			fmt.Fprintf(w, "%s%soptional<%s> (absent)\n", indent, label, n.ElemKind())
			return
		}
		fmt.Fprintf(w, "%s%soptional<%s>\n", indent, label, n.ElemKind())
		printNode(w, n.OptionalInner(), dict, "value", depth+1)
	default:
		fmt.Fprintf(w, "%s%s%s\n", indent, label, n)
	}
}

func printProps(w io.Writer, n *binmeta.Node, dict *hashes.Dict, depth int) {
	for _, p := range n.Props() {
		printNode(w, p.Value, dict, dict.Format(p.NameHash), depth)
	}
}
