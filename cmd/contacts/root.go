package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "contacts",
		Short:         "Gestión de clients y teléfonos sobre PostgreSQL",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.out != "text" && a.out != "json" {
				return fmt.Errorf("--out inválido %q (text|json)", a.out)
			}
			if !needsStore(cmd) {
				return nil
			}
			return a.open(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "Path al YAML de config (opcional)")
	root.PersistentFlags().StringVar(&a.dsn, "dsn", "", "DSN de PostgreSQL (override de storage.dsn / CONTACTS_DSN)")
	root.PersistentFlags().StringVar(&a.out, "out", "text", "Formato de salida: text|json")

	root.AddCommand(
		schemaCmds(a)...,
	)
	root.AddCommand(
		addClientCmd(a),
		addPhoneCmd(a),
		deletePhoneCmd(a),
		deleteClientCmd(a),
		updateClientCmd(a),
		findCmd(a),
		listCmd(a),
		getCmd(a),
		demoCmd(a),
		serveCmd(a),
	)
	return root
}

// needsStore: help y completion (los de cobra) no tocan la DB.
func needsStore(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion":
			return false
		}
	}
	return true
}
