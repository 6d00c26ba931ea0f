package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kestrelworks/kestrel/internal/cluster"
	"github.com/kestrelworks/kestrel/internal/primitives"
	"github.com/kestrelworks/kestrel/pkg/log"
)

type graphFlags struct {
	rootPath   string
	clusterDir string
}

func (f *graphFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.rootPath, "file", "f", "", "Root cluster definition document")
	cmd.Flags().StringVarP(&f.clusterDir, "clusters", "d", "", "Directory of nested cluster documents")
	_ = cmd.MarkFlagRequired("file")
}

func (f *graphFlags) expand() (*cluster.ExpandedGraph, error) {
	logger := log.WithComponent("expander")

	def, err := cluster.ParseDefinition(f.rootPath)
	if err != nil {
		return nil, err
	}

	var loader cluster.Loader = cluster.NewMapLoader()
	if f.clusterDir != "" {
		dirLoader, err := cluster.NewDirLoader(f.clusterDir)
		if err != nil {
			return nil, err
		}
		loader = dirLoader
	}

	cat, err := primitives.CoreCatalog()
	if err != nil {
		return nil, err
	}

	graph, err := cluster.Expand(def, loader, cat)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("cluster", def.ID).
		Int("nodes", len(graph.Nodes)).
		Int("edges", len(graph.Edges)).
		Msg("expanded cluster")

	return graph, nil
}

func newExpandCmd() *cobra.Command {
	flags := &graphFlags{}

	cmd := &cobra.Command{
		Use:   "expand",
		Short: "Expand a cluster definition and print its inferred signature",
		RunE: func(cmd *cobra.Command, args []string) error {
			graph, err := flags.expand()
			if err != nil {
				return err
			}

			cat, err := primitives.CoreCatalog()
			if err != nil {
				return err
			}

			signature, err := cluster.InferSignature(graph, cat)
			if err != nil {
				return err
			}

			summary := struct {
				Nodes     int                `json:"nodes"`
				Edges     int                `json:"edges"`
				Signature *cluster.Signature `json:"signature"`
			}{
				Nodes:     len(graph.Nodes),
				Edges:     len(graph.Edges),
				Signature: signature,
			}

			encoded, err := json.MarshalIndent(summary, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
