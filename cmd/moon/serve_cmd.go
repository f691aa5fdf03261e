package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/Relsola/moon/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the compiler over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			addr := viper.GetString("addr")
			logger := newLogger()
			srv := server.New(
				server.WithLogger(logger),
				server.WithCompileOptions(compileOptions()...),
			)
			fmt.Fprintf(cmd.ErrOrStderr(), "moon %s listening on %s\n", version, green(addr))
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().String("addr", "localhost:8080", "Address to listen on")
	if err := viper.BindPFlag("addr", cmd.Flags().Lookup("addr")); err != nil {
		panic(err)
	}
	return cmd
}
