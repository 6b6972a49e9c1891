package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Virgo-SSS/Ternakku/internal/client/api"
	"github.com/Virgo-SSS/Ternakku/internal/client/viewmodel"
)

func (a *app) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Perfil del usuario",
	}
	cmd.AddCommand(a.profileShowCmd(), a.profileSetCmd())
	return cmd
}

func (a *app) profileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Mostrar mi perfil",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.client.MyProfile(cmd.Context())
			if err != nil {
				a.ui.Error(api.ErrorMessage(err))
				return shown(err)
			}
			a.printProfile(p)
			return nil
		},
	}
}

func (a *app) profileSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set key=value...",
		Short: "Crear o actualizar mi perfil",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := map[string]any{}
			for _, kv := range args {
				k, v, ok := strings.Cut(kv, "=")
				if !ok || strings.TrimSpace(k) == "" {
					return fmt.Errorf("expected key=value, got %q", kv)
				}
				fields[strings.TrimSpace(k)] = v
			}

			ctx := cmd.Context()
			id := ""
			if p, err := a.client.MyProfile(ctx); err == nil {
				id = p.ID
			}

			var saved api.Profile
			form := viewmodel.NewFormPage(fields, func(ctx context.Context, f map[string]any) (string, error) {
				p, msg, err := a.client.SaveProfile(ctx, id, f)
				saved = p
				return msg, err
			}, a.ui, nil, "")
			if err := form.Submit(ctx); err != nil {
				return shown(err)
			}
			a.printProfile(saved)
			return nil
		},
	}
}

func (a *app) printProfile(p api.Profile) {
	keys := make([]string, 0, len(p.Fields))
	for k := range p.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := a.table()
	fmt.Fprintf(tw, "id\t%s\n", p.ID)
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%s\n", k, p.Fields[k])
	}
	_ = tw.Flush()
}
