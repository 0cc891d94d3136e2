package config

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Escopo usado na checagem de saldo ao criar uma despesa
const (
	BalanceScopeUser         = "user"
	BalanceScopeOrganization = "organization"
)

// Config configuração da aplicação
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Email    EmailConfig    `mapstructure:"email"`
	Log      LogConfig      `mapstructure:"log"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Finance  FinanceConfig  `mapstructure:"finance"`
}

// ServerConfig configuração do servidor HTTP
type ServerConfig struct {
	Port           string `mapstructure:"port"`
	Mode           string `mapstructure:"mode"`
	BaseURL        string `mapstructure:"base_url"`
	LoginRateLimit int    `mapstructure:"login_rate_limit"`
}

// DatabaseConfig configuração do banco de dados
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Charset  string `mapstructure:"charset"`
	SSLMode  string `mapstructure:"sslmode"`
	Path     string `mapstructure:"path"`
	LogLevel string `mapstructure:"log_level"`
}

// JWTConfig configuração do JWT
type JWTConfig struct {
	Secret      string        `mapstructure:"secret"`
	ExpireHours int           `mapstructure:"expire_hours"`
	ExpireTime  time.Duration `mapstructure:"-"`
}

// EmailConfig configuração de e-mail
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// LogConfig configuração de log
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// StorageConfig armazenamento dos comprovantes de pagamento
type StorageConfig struct {
	UploadDir   string `mapstructure:"upload_dir"`
	PublicPath  string `mapstructure:"public_path"`
	MaxUploadMB int    `mapstructure:"max_upload_mb"`
}

// FinanceConfig regras do caixa
type FinanceConfig struct {
	BalanceScope string `mapstructure:"balance_scope"`
}

var (
	// GlobalConfig instância global da configuração
	GlobalConfig *Config
)

// LoadConfig carrega a configuração
// Prioridade: variáveis de ambiente > arquivo externo > configuração embutida
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("falha ao ler configuração embutida: %w", err)
	}
	log.Debug("configuração embutida carregada")

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			log.Warnf("não foi possível ler o arquivo de configuração %s: %v", configPath, err)
		} else {
			log.Infof("arquivo de configuração mesclado: %s", configPath)
		}
	} else {
		externalViper := viper.New()
		externalViper.SetConfigName("config")
		externalViper.SetConfigType("yaml")
		externalViper.AddConfigPath(".")
		externalViper.AddConfigPath("./config")
		externalViper.AddConfigPath("/etc/fincontrol")
		externalViper.AddConfigPath("$HOME/.fincontrol")

		if err := externalViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(externalViper.AllSettings()); err != nil {
				log.Warnf("falha ao mesclar configuração externa: %v", err)
			} else {
				log.Infof("arquivo de configuração mesclado: %s", externalViper.ConfigFileUsed())
			}
		}
	}

	v.SetEnvPrefix("FINCONTROL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("falha ao interpretar configuração: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	GlobalConfig = &cfg

	return &cfg, nil
}

// ListenAddr devolve a porta no formato aceito pelo gin (":8080");
// aceita "8080", ":8080" ou "host:8080"
func ListenAddr(port string) string {
	port = strings.TrimSpace(port)
	if port == "" {
		return ":8080"
	}
	if !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}

func (c *Config) normalize() error {
	c.Server.Port = ListenAddr(c.Server.Port)
	if c.JWT.ExpireHours <= 0 {
		c.JWT.ExpireHours = 24
	}
	c.JWT.ExpireTime = time.Duration(c.JWT.ExpireHours) * time.Hour

	if c.Server.LoginRateLimit <= 0 {
		c.Server.LoginRateLimit = 5
	}
	if c.Storage.MaxUploadMB <= 0 {
		c.Storage.MaxUploadMB = 5
	}

	c.Database.Driver = strings.ToLower(c.Database.Driver)
	switch c.Database.Driver {
	case "":
		c.Database.Driver = "mysql"
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("driver de banco não suportado: %s", c.Database.Driver)
	}

	c.Finance.BalanceScope = strings.ToLower(c.Finance.BalanceScope)
	switch c.Finance.BalanceScope {
	case "":
		c.Finance.BalanceScope = BalanceScopeUser
	case BalanceScopeUser, BalanceScopeOrganization:
	default:
		return fmt.Errorf("finance.balance_scope inválido: %s", c.Finance.BalanceScope)
	}
	return nil
}

// PrintConfig registra a configuração atual sem dados sensíveis
func PrintConfig() {
	if GlobalConfig == nil {
		return
	}
	c := GlobalConfig
	fields := log.Fields{
		"port":          c.Server.Port,
		"mode":          c.Server.Mode,
		"db_driver":     c.Database.Driver,
		"email":         c.Email.Enabled,
		"balance_scope": c.Finance.BalanceScope,
	}
	if c.Database.Driver == "sqlite" {
		fields["db_path"] = c.Database.Path
	} else {
		fields["db"] = fmt.Sprintf("%s@%s:%s/%s", c.Database.Username, c.Database.Host, c.Database.Port, c.Database.DBName)
	}
	log.WithFields(fields).Info("configuração atual")
}
