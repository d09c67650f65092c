package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/contacts/internal/store/core"
)

// demoCmd reproduce la secuencia de ejemplo: resetea el schema, carga dos
// clients, busca, borra y actualiza, mostrando la tabla entre pasos.
func demoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Ejecutar la secuencia de ejemplo (DESTRUYE los datos existentes)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, p := a.store, a.printer()

			step := func(title string) error {
				if !p.json {
					fmt.Fprintf(p.w, "\n# %s\n", title)
				}
				rows, err := s.ListAll(ctx)
				if err != nil {
					return err
				}
				return p.rows(rows)
			}

			if err := s.ResetSchema(ctx); err != nil {
				return err
			}
			if err := s.InitializeSchema(ctx); err != nil {
				return err
			}
			if _, err := s.AddClient(ctx, "cl1", "cl_last1", "abc@d.ef", "1234567895", "9876543214"); err != nil {
				return err
			}
			if _, err := s.AddClient(ctx, "cl2", "cl_last2", "abcd@g.fa"); err != nil {
				return err
			}
			if _, err := s.AddPhone(ctx, 2, "1111111111"); err != nil {
				return err
			}
			if err := step("full table"); err != nil {
				return err
			}

			found, err := s.FindClients(ctx, core.ClientFilter{LastName: "cl_last2"})
			if err != nil {
				return err
			}
			if !p.json {
				fmt.Fprintln(p.w, "\n# find last_name = 'cl_last2'")
			}
			if err := p.rows(found); err != nil {
				return err
			}

			if _, err := s.DeletePhone(ctx, 1, "1234567895"); err != nil {
				return err
			}
			if err := step("after deleting phone 1234567895"); err != nil {
				return err
			}
			if _, err := s.DeleteClient(ctx, 1); err != nil {
				return err
			}
			if err := step("after deleting client 1"); err != nil {
				return err
			}
			upd := core.ClientUpdate{LastName: "new_name", OldPhone: "1111111111", NewPhone: "2222222222"}
			if _, err := s.UpdateClient(ctx, 2, upd); err != nil {
				return err
			}
			return step("after updating client 2")
		},
	}
}
