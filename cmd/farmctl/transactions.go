package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Virgo-SSS/Ternakku/internal/client/api"
	"github.com/Virgo-SSS/Ternakku/internal/client/viewmodel"
)

func (a *app) transactionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "keuangan",
		Aliases: []string{"tx"},
		Short:   "Ingresos y egresos",
	}
	cmd.AddCommand(a.txListCmd(), a.txCreateCmd(), a.txUpdateCmd(), a.txDeleteCmd(), a.txSummaryCmd())
	return cmd
}

func (a *app) txPage() *viewmodel.ListPage[api.Transaction] {
	return viewmodel.NewListPage[api.Transaction](a.client.Transactions(), func(t api.Transaction) string { return t.ID }, a.ui, a.ui)
}

type txFilterFlags struct {
	typ, category, from, to string
}

func (f *txFilterFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.typ, "type", "", "income|expense")
	cmd.Flags().StringVar(&f.category, "category", "", "categoría")
	cmd.Flags().StringVar(&f.from, "from", "", "desde (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "hasta (YYYY-MM-DD)")
}

func (f *txFilterFlags) filter() (map[string]string, error) {
	d, err := dateFilter(f.from, f.to)
	if err != nil {
		return nil, err
	}
	return map[string]string{"type": f.typ, "category": f.category, "transaction_date": d}, nil
}

func (a *app) txListCmd() *cobra.Command {
	var ff txFilterFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Listar transacciones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := ff.filter()
			if err != nil {
				return err
			}
			return a.listTransactions(cmd.Context(), filter)
		},
	}
	ff.bind(cmd)
	return cmd
}

func (a *app) listTransactions(ctx context.Context, filter map[string]string) error {
	page := a.txPage()
	if err := page.Load(ctx, filter); err != nil {
		return shown(err)
	}

	tw := a.table()
	fmt.Fprintln(tw, "ID\tDATE\tTYPE\tCATEGORY\tAMOUNT\tDESCRIPTION")
	for _, t := range page.Items() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\t%s\n", t.ID, t.TransactionDate, t.TypeLabel, t.Category, t.Amount, t.Description)
	}
	return tw.Flush()
}

func (a *app) txCreateCmd() *cobra.Command {
	var in api.Transaction
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Registrar transacción",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			form := viewmodel.NewFormPage(api.Transaction{}, func(ctx context.Context, t api.Transaction) (string, error) {
				_, msg, err := a.client.Transactions().Create(ctx, t)
				return msg, err
			}, a.ui, a.navigator(ctx), viewmodel.PathTransactions)

			_ = form.Edit(func(t *api.Transaction) { *t = in })
			return shown(form.Submit(ctx))
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Type, "type", "", "income|expense")
	f.Float64Var(&in.Amount, "amount", 0, "monto")
	f.StringVar(&in.Category, "category", "", "categoría")
	f.StringVar(&in.TransactionDate, "date", "", "YYYY-MM-DD")
	f.StringVar(&in.Description, "description", "", "descripción")
	return cmd
}

var txPatchKeys = map[string]string{
	"type":        "type",
	"amount":      "amount",
	"category":    "category",
	"date":        "transaction_date",
	"description": "description",
}

func (a *app) txUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Actualizar campos de una transacción",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := patchFrom(cmd, txPatchKeys)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			form := viewmodel.NewFormPage(patch, func(ctx context.Context, p map[string]any) (string, error) {
				_, msg, err := a.client.Transactions().Update(ctx, args[0], p)
				return msg, err
			}, a.ui, a.navigator(ctx), viewmodel.PathTransactions)
			return shown(form.Submit(ctx))
		},
	}
	f := cmd.Flags()
	f.String("type", "", "income|expense")
	f.Float64("amount", 0, "monto")
	f.String("category", "", "categoría")
	f.String("date", "", "YYYY-MM-DD")
	f.String("description", "", "descripción")
	return cmd
}

func (a *app) txDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Eliminar transacción (pide confirmación)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := a.client.Transactions().Get(ctx, args[0])
			if err != nil {
				a.ui.Error(api.ErrorMessage(err))
				return shown(err)
			}

			page := a.txPage()
			page.SetItems([]api.Transaction{t})
			_, err = page.Delete(ctx, t.ID)
			return shown(err)
		},
	}
}

func (a *app) txSummaryCmd() *cobra.Command {
	var ff txFilterFlags
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Totales de ingresos, egresos y balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := ff.filter()
			if err != nil {
				return err
			}
			s, err := a.client.TransactionSummary(cmd.Context(), filter)
			if err != nil {
				a.ui.Error(api.ErrorMessage(err))
				return shown(err)
			}

			tw := a.table()
			fmt.Fprintf(tw, "Pemasukan\t%.2f\n", s.Income)
			fmt.Fprintf(tw, "Pengeluaran\t%.2f\n", s.Expense)
			fmt.Fprintf(tw, "Saldo\t%.2f\n", s.Balance)
			fmt.Fprintf(tw, "Transaksi\t%d\n", s.Count)

			cats := make([]string, 0, len(s.ByCategory))
			for c := range s.ByCategory {
				cats = append(cats, c)
			}
			sort.Strings(cats)
			for _, c := range cats {
				fmt.Fprintf(tw, "  %s\t%.2f\n", c, s.ByCategory[c])
			}
			return tw.Flush()
		},
	}
	ff.bind(cmd)
	return cmd
}
