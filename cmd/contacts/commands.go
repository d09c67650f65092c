package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/contacts/internal/store/core"
	"github.com/dropDatabas3/contacts/internal/store/pg"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id inválido %q", s)
	}
	return id, nil
}

func schemaCmds(a *app) []*cobra.Command {
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Crear tablas client y phone (idempotente)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.InitializeSchema(cmd.Context()); err != nil {
				return err
			}
			return a.printer().message("schema ready")
		},
	}
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Borrar tablas phone y client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.ResetSchema(cmd.Context()); err != nil {
				return err
			}
			return a.printer().message("schema dropped")
		},
	}
	return []*cobra.Command{initCmd, resetCmd}
}

func addClientCmd(a *app) *cobra.Command {
	var (
		phones []string
		atomic bool
	)
	cmd := &cobra.Command{
		Use:   "add-client FIRST_NAME LAST_NAME EMAIL",
		Short: "Alta de client (con teléfonos opcionales)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var id int64
			add := func(s *pg.Store) error {
				var err error
				id, err = s.AddClient(ctx, args[0], args[1], args[2], phones...)
				return err
			}
			var err error
			if atomic {
				err = a.store.InTx(ctx, add)
			} else {
				err = add(a.store)
			}
			if err != nil {
				return err
			}
			return a.printer().id("client_id", id)
		},
	}
	cmd.Flags().StringSliceVar(&phones, "phone", nil, "Teléfono (10 dígitos); repetible")
	cmd.Flags().BoolVar(&atomic, "atomic", false, "Client y teléfonos en una sola transacción")
	return cmd
}

func addPhoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add-phone CLIENT_ID PHONE",
		Short: "Agregar teléfono a un client",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientID, err := parseID(args[0])
			if err != nil {
				return err
			}
			id, err := a.store.AddPhone(cmd.Context(), clientID, args[1])
			if err != nil {
				return err
			}
			return a.printer().id("phone_id", id)
		},
	}
}

func deletePhoneCmd(a *app) *cobra.Command {
	var byOwner bool
	cmd := &cobra.Command{
		Use:   "delete-phone ID PHONE",
		Short: "Borrar teléfono (ID = phone.id; con --by-owner, ID = client id)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var n int64
			if byOwner {
				n, err = a.store.DeletePhoneByOwner(cmd.Context(), id, args[1])
			} else {
				n, err = a.store.DeletePhone(cmd.Context(), id, args[1])
			}
			if err != nil {
				return err
			}
			return a.printer().affected(n)
		},
	}
	cmd.Flags().BoolVar(&byOwner, "by-owner", false, "Interpretar ID como id del client dueño")
	return cmd
}

func deleteClientCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-client CLIENT_ID",
		Short: "Borrar client y todos sus teléfonos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			n, err := a.store.DeleteClient(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.printer().affected(n)
		},
	}
}

func updateClientCmd(a *app) *cobra.Command {
	var (
		upd    core.ClientUpdate
		atomic bool
	)
	cmd := &cobra.Command{
		Use:   "update-client CLIENT_ID",
		Short: "Actualizar campos de un client y/o renumerar un teléfono",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if (upd.OldPhone == "") != (upd.NewPhone == "") {
				return fmt.Errorf("--old-phone y --new-phone van juntos")
			}
			ctx := cmd.Context()
			var n int64
			update := func(s *pg.Store) error {
				var err error
				n, err = s.UpdateClient(ctx, id, upd)
				return err
			}
			if atomic {
				err = a.store.InTx(ctx, update)
			} else {
				err = update(a.store)
			}
			if err != nil {
				return err
			}
			return a.printer().affected(n)
		},
	}
	cmd.Flags().StringVar(&upd.FirstName, "first-name", "", "Nuevo first_name")
	cmd.Flags().StringVar(&upd.LastName, "last-name", "", "Nuevo last_name")
	cmd.Flags().StringVar(&upd.Email, "email", "", "Nuevo email")
	cmd.Flags().StringVar(&upd.OldPhone, "old-phone", "", "Teléfono actual a renumerar")
	cmd.Flags().StringVar(&upd.NewPhone, "new-phone", "", "Número nuevo")
	cmd.Flags().BoolVar(&atomic, "atomic", false, "Todos los UPDATE en una sola transacción")
	return cmd
}

func findCmd(a *app) *cobra.Command {
	var (
		f   core.ClientFilter
		all bool
	)
	cmd := &cobra.Command{
		Use:   "find",
		Short: "Buscar clients por first_name/last_name/email/phone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				f.Mode = core.MatchAll
			}
			rows, err := a.store.FindClients(cmd.Context(), f)
			if err != nil {
				return err
			}
			return a.printer().rows(rows)
		},
	}
	cmd.Flags().StringVar(&f.FirstName, "first-name", "", "Filtro first_name")
	cmd.Flags().StringVar(&f.LastName, "last-name", "", "Filtro last_name")
	cmd.Flags().StringVar(&f.Email, "email", "", "Filtro email")
	cmd.Flags().StringVar(&f.Phone, "phone", "", "Filtro phone_num")
	cmd.Flags().BoolVar(&all, "all", false, "Combinar filtros con AND (default: solo el último filtro)")
	return cmd
}

func listCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Listar todos los clients con sus teléfonos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := a.store.ListAll(cmd.Context())
			if err != nil {
				return err
			}
			return a.printer().rows(rows)
		},
	}
}

func getCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get CLIENT_ID",
		Short: "Mostrar un client con sus teléfonos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := a.store.GetClient(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.printer().client(c)
		},
	}
}
