package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"sorteios_api/internal/infrastructure/bootstrap"
	"sorteios_api/internal/infrastructure/config"
	"sorteios_api/internal/usecase"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

var Version = "dev"

// paymentUseCaseFactory builds the reconciler and a cleanup func.
type paymentUseCaseFactory func(ctx context.Context, cfg *config.Config) (usecase.IPaymentUseCase, func(), error)

func buildPaymentUseCase(ctx context.Context, cfg *config.Config) (usecase.IPaymentUseCase, func(), error) {
	c, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return c.PaymentUseCase, c.Close, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(config.Load(), buildPaymentUseCase).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config, build paymentUseCaseFactory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "reconciler",
		Short:         "Reconcile local payments with the payment provider",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(sweepCmd(cfg, build))
	rootCmd.AddCommand(paymentCmd(cfg, build))
	rootCmd.AddCommand(registerCmd(cfg, build))
	return rootCmd
}
