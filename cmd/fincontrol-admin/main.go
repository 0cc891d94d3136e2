// Command fincontrol-admin cria o primeiro administrador e faz manutenção
// do banco sem passar pela API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "fincontrol-admin",
		Short:         "Administração do FinControl",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "arquivo de configuração externo (opcional)")

	root.AddCommand(createAdminCmd(&cfgFile))
	root.AddCommand(setRoleCmd(&cfgFile))
	root.AddCommand(migrateCmd(&cfgFile))
	root.AddCommand(testEmailCmd(&cfgFile))
	return root
}
