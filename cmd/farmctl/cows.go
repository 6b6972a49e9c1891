package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Virgo-SSS/Ternakku/internal/client/api"
	"github.com/Virgo-SSS/Ternakku/internal/client/viewmodel"
)

func (a *app) cowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cow",
		Aliases: []string{"ternak", "sapi"},
		Short:   "Inventario de ganado",
	}
	cmd.AddCommand(a.cowListCmd(), a.cowCreateCmd(), a.cowUpdateCmd(), a.cowDeleteCmd(), a.cowStatusesCmd())
	return cmd
}

func (a *app) cowPage() *viewmodel.ListPage[api.Cow] {
	return viewmodel.NewListPage[api.Cow](a.client.Cows(), func(c api.Cow) string { return c.ID }, a.ui, a.ui).
		WithMessages(viewmodel.ListMessages{
			ConfirmDelete: viewmodel.DefaultListMessages.ConfirmDelete,
			Deleted:       "Data sapi berhasil dihapus",
		})
}

func (a *app) cowListCmd() *cobra.Command {
	var name, status, gender, from, to string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Listar vacas (filtros opcionales)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bd, err := dateFilter(from, to)
			if err != nil {
				return err
			}
			return a.listCows(cmd.Context(), map[string]string{
				"name":       name,
				"status":     status,
				"gender":     gender,
				"birth_date": bd,
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "texto contenido en el nombre")
	f.StringVar(&status, "status", "", "healthy|sick|pregnant|quarantine|sold|dead")
	f.StringVar(&gender, "gender", "", "M|F")
	f.StringVar(&from, "born-from", "", "nacida desde (YYYY-MM-DD)")
	f.StringVar(&to, "born-to", "", "nacida hasta (YYYY-MM-DD)")
	return cmd
}

func (a *app) listCows(ctx context.Context, filter map[string]string) error {
	page := a.cowPage()
	if err := page.Load(ctx, filter); err != nil {
		return shown(err)
	}

	tw := a.table()
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tGENDER\tBIRTH DATE\tWEIGHT\tTYPE")
	for _, c := range page.Items() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.1f\t%s\n", c.ID, c.Name, c.StatusLabel, c.Gender, c.BirthDate, c.Weight, c.Type)
	}
	return tw.Flush()
}

func (a *app) cowCreateCmd() *cobra.Command {
	var in api.Cow

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Registrar una vaca",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			form := viewmodel.NewFormPage(api.Cow{}, func(ctx context.Context, c api.Cow) (string, error) {
				_, msg, err := a.client.Cows().Create(ctx, c)
				return msg, err
			}, a.ui, a.navigator(ctx), viewmodel.PathCows)

			_ = form.Edit(func(c *api.Cow) { *c = in })
			return shown(form.Submit(ctx))
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "nombre")
	f.StringVar(&in.Status, "status", "healthy", "healthy|sick|pregnant|quarantine|sold|dead")
	f.StringVar(&in.Gender, "gender", "", "M|F")
	f.StringVar(&in.BirthDate, "birth-date", "", "YYYY-MM-DD")
	f.Float64Var(&in.Weight, "weight", 0, "peso en kg")
	f.StringVar(&in.Type, "type", "", "raza, p.ej. Sapi Bali")
	return cmd
}

var cowPatchKeys = map[string]string{
	"name":       "name",
	"status":     "status",
	"gender":     "gender",
	"birth-date": "birth_date",
	"weight":     "weight",
	"type":       "type",
}

func (a *app) cowUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Actualizar campos de una vaca",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := patchFrom(cmd, cowPatchKeys)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			form := viewmodel.NewFormPage(patch, func(ctx context.Context, p map[string]any) (string, error) {
				_, msg, err := a.client.Cows().Update(ctx, args[0], p)
				return msg, err
			}, a.ui, a.navigator(ctx), viewmodel.PathCows)
			return shown(form.Submit(ctx))
		},
	}
	f := cmd.Flags()
	f.String("name", "", "nombre")
	f.String("status", "", "healthy|sick|pregnant|quarantine|sold|dead")
	f.String("gender", "", "M|F")
	f.String("birth-date", "", "YYYY-MM-DD")
	f.Float64("weight", 0, "peso en kg")
	f.String("type", "", "raza")
	return cmd
}

func (a *app) cowDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Eliminar una vaca (pide confirmación)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := a.client.Cows().Get(ctx, args[0])
			if err != nil {
				a.ui.Error(api.ErrorMessage(err))
				return shown(err)
			}

			page := a.cowPage()
			page.SetItems([]api.Cow{c})
			_, err = page.Delete(ctx, c.ID)
			return shown(err)
		},
	}
}

func (a *app) cowStatusesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "statuses",
		Short: "Estados posibles con su etiqueta",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := a.client.CowStatuses(cmd.Context())
			if err != nil {
				a.ui.Error(api.ErrorMessage(err))
				return shown(err)
			}
			tw := a.table()
			for _, o := range opts {
				fmt.Fprintf(tw, "%s\t%s\n", o.Value, o.Label)
			}
			return tw.Flush()
		},
	}
}
