package main

import (
	"errors"
	"fmt"

	"fincontrol/config"
	"fincontrol/database"
	"fincontrol/logger"
	"fincontrol/models"
	"fincontrol/service"
	"fincontrol/validation"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func loadConfig(cfgFile string) (*config.Config, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Log); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openDB abre e migra o banco configurado
func openDB(cfgFile string) (*gorm.DB, error) {
	cfg, err := loadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func createAdminCmd(cfgFile *string) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Cria um usuário administrador",
		Long:  "Cria um administrador. Se o e-mail já existir, nada é alterado.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openDB(*cfgFile)
			if err != nil {
				return err
			}
			defer closeDB(db)

			ctx := cmd.Context()
			var existing models.User
			err = db.WithContext(ctx).Where("email = ?", validation.NormalizeEmail(email)).First(&existing).Error
			if err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "usuário %s já existe (papel: %s)\n", existing.Email, existing.Role)
				return nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("falha ao buscar usuário: %w", err)
			}

			user, err := service.CreateUser(ctx, db, service.UserInput{
				Name:     name,
				Email:    email,
				Password: password,
				Role:     models.RoleAdmin,
			})
			if err != nil {
				return err
			}
			log.WithField("email", user.Email).Info("administrador criado")
			fmt.Fprintf(cmd.OutOrStdout(), "administrador %s criado (id %d)\n", user.Email, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "Administrador", "nome")
	cmd.Flags().StringVar(&email, "email", "", "e-mail de acesso")
	cmd.Flags().StringVar(&password, "password", "", "senha (8 a 128 caracteres)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func setRoleCmd(cfgFile *string) *cobra.Command {
	var email, role string

	cmd := &cobra.Command{
		Use:   "set-role",
		Short: "Altera o papel de um usuário (user ou admin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openDB(*cfgFile)
			if err != nil {
				return err
			}
			defer closeDB(db)

			user, err := service.SetRole(cmd.Context(), db, email, role)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s agora é %s\n", user.Email, user.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "e-mail do usuário")
	cmd.Flags().StringVar(&role, "role", "", "novo papel: user ou admin")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}

func migrateCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Cria ou atualiza as tabelas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openDB(*cfgFile)
			if err != nil {
				return err
			}
			closeDB(db)
			fmt.Fprintln(cmd.OutOrStdout(), "migração concluída")
			return nil
		},
	}
}

func testEmailCmd(cfgFile *string) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "test-email",
		Short: "Envia um e-mail de teste com a configuração SMTP atual",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*cfgFile)
			if err != nil {
				return err
			}
			if err := service.NewEmailService(&cfg.Email).SendTestEmail(to); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "e-mail de teste enviado para %s\n", to)
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "destinatário")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
