package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"sorteios_api/internal/infrastructure/config"

	"github.com/spf13/cobra"
)

func sweepCmd(cfg *config.Config, build paymentUseCaseFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Reconcile pending payments, oldest update first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			uc, cleanup, err := build(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			summary, err := uc.ReconcilePending(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "checked=%d changed=%d unchanged=%d failed=%d\n",
				summary.Checked, summary.Changed, summary.Unchanged, len(summary.Failures))

			ids := make([]string, 0, len(summary.Failures))
			for id := range summary.Failures {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			for _, id := range ids {
				fmt.Fprintf(out, "  %s: %s\n", id, summary.Failures[id])
			}

			if len(summary.Failures) > 0 {
				return fmt.Errorf("%d payment(s) failed to reconcile", len(summary.Failures))
			}
			return nil
		},
	}

	cmd.Flags().IntP("limit", "n", cfg.Sweep.Limit, "Maximum pending payments to check")
	return cmd
}

func paymentCmd(cfg *config.Config, build paymentUseCaseFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "payment [provider-payment-id]",
		Short: "Reconcile a single payment and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, cleanup, err := build(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := uc.Reconcile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
}

func registerCmd(cfg *config.Config, build paymentUseCaseFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register [provider-payment-id]",
		Short: "Backfill a pending local record for a payment created elsewhere",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			transactionID, _ := cmd.Flags().GetString("transaction")

			uc, cleanup, err := build(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := uc.Register(cmd.Context(), args[0], transactionID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registered %s transaction=%s provider=%s status=%s\n", p.ID, p.TransactionID, p.Provider, p.Status)
			return nil
		},
	}

	cmd.Flags().StringP("transaction", "t", "", "Transaction id the payment belongs to")
	_ = cmd.MarkFlagRequired("transaction")
	return cmd
}
