package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Virgo-SSS/Ternakku/internal/client/api"
	"github.com/Virgo-SSS/Ternakku/internal/client/viewmodel"
)

func (a *app) workerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "worker",
		Aliases: []string{"pekerja"},
		Short:   "Pekerja de la granja",
	}
	cmd.AddCommand(a.workerListCmd(), a.workerCreateCmd(), a.workerUpdateCmd(), a.workerDeleteCmd())
	return cmd
}

func (a *app) workerPage() *viewmodel.ListPage[api.Worker] {
	return viewmodel.NewListPage[api.Worker](a.client.Workers(), func(w api.Worker) string { return w.ID }, a.ui, a.ui)
}

func (a *app) workerListCmd() *cobra.Command {
	var name, gender string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Listar pekerja",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.listWorkers(cmd.Context(), map[string]string{"name": name, "gender": gender})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "texto contenido en el nombre")
	cmd.Flags().StringVar(&gender, "gender", "", "M|F")
	return cmd
}

func (a *app) listWorkers(ctx context.Context, filter map[string]string) error {
	page := a.workerPage()
	if err := page.Load(ctx, filter); err != nil {
		return shown(err)
	}

	tw := a.table()
	fmt.Fprintln(tw, "ID\tNAME\tGENDER\tPHONE\tEMAIL")
	for _, w := range page.Items() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", w.ID, w.Name, w.GenderLabel, w.PhoneNumber, w.Email)
	}
	return tw.Flush()
}

func (a *app) workerCreateCmd() *cobra.Command {
	var in api.Worker

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Registrar pekerja",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			form := viewmodel.NewFormPage(api.Worker{}, func(ctx context.Context, w api.Worker) (string, error) {
				_, msg, err := a.client.Workers().Create(ctx, w)
				return msg, err
			}, a.ui, a.navigator(ctx), viewmodel.PathWorkers)

			_ = form.Edit(func(w *api.Worker) { *w = in })
			return shown(form.Submit(ctx))
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "nombre")
	f.StringVar(&in.Gender, "gender", "", "M|F")
	f.StringVar(&in.PhoneNumber, "phone", "", "teléfono (solo dígitos)")
	f.StringVar(&in.Email, "email", "", "email")
	return cmd
}

var workerPatchKeys = map[string]string{
	"name":   "name",
	"gender": "gender",
	"phone":  "phone_number",
	"email":  "email",
}

func (a *app) workerUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Actualizar campos de un pekerja",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := patchFrom(cmd, workerPatchKeys)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			form := viewmodel.NewFormPage(patch, func(ctx context.Context, p map[string]any) (string, error) {
				_, msg, err := a.client.Workers().Update(ctx, args[0], p)
				return msg, err
			}, a.ui, a.navigator(ctx), viewmodel.PathWorkers)
			return shown(form.Submit(ctx))
		},
	}
	f := cmd.Flags()
	f.String("name", "", "nombre")
	f.String("gender", "", "M|F")
	f.String("phone", "", "teléfono")
	f.String("email", "", "email")
	return cmd
}

func (a *app) workerDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Eliminar pekerja (pide confirmación)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w, err := a.client.Workers().Get(ctx, args[0])
			if err != nil {
				a.ui.Error(api.ErrorMessage(err))
				return shown(err)
			}

			page := a.workerPage()
			page.SetItems([]api.Worker{w})
			_, err = page.Delete(ctx, w.ID)
			return shown(err)
		},
	}
}
