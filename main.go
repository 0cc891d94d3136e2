package main

import (
	"flag"
	"fmt"

	"fincontrol/config"
	"fincontrol/database"
	"fincontrol/logger"
	"fincontrol/middleware"
	"fincontrol/router"
	"fincontrol/service"

	log "github.com/sirupsen/logrus"
)

// @title FinControl API
// @version 1.0
// @description Controle financeiro interno: transações com aprovação, categorias, painel e planos de pagamento
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const version = "1.0.0"

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "arquivo de configuração externo (opcional)")
	flag.StringVar(&configFile, "c", "", "arquivo de configuração externo (atalho)")
	flag.StringVar(&port, "port", "", "porta de escuta, ex.: 8080 ou :8080")
	flag.StringVar(&port, "p", "", "porta de escuta (atalho)")
	flag.BoolVar(&showVersion, "version", false, "mostra a versão")
	flag.BoolVar(&showVersion, "v", false, "mostra a versão (atalho)")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Printf("fincontrol v%s\n", version)
		return
	}

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("falha ao carregar configuração: %v", err)
	}
	if err := logger.Init(cfg.Log); err != nil {
		log.Fatalf("falha ao configurar log: %v", err)
	}

	if port != "" {
		port = config.ListenAddr(port)
		cfg.Server.Port = port
		log.Infof("porta definida pela linha de comando: %s", port)
	}

	config.PrintConfig()

	if err := database.Init(cfg); err != nil {
		log.Fatalf("falha ao inicializar o banco: %v", err)
	}

	middleware.InitJWT(cfg)

	store, err := service.NewLocalStore(cfg.Storage)
	if err != nil {
		log.Fatalf("falha ao preparar armazenamento de comprovantes: %v", err)
	}
	mailer := service.NewEmailService(&cfg.Email)
	if !mailer.Enabled() {
		log.Warn("envio de e-mails desativado")
	}

	r := router.SetupRouter(cfg, mailer, store)

	log.WithFields(log.Fields{
		"api":     fmt.Sprintf("http://localhost%s/api/v1/", cfg.Server.Port),
		"swagger": fmt.Sprintf("http://localhost%s/swagger/index.html", cfg.Server.Port),
	}).Info("FinControl iniciado")

	if err := r.Run(cfg.Server.Port); err != nil {
		log.Fatalf("falha ao iniciar o servidor: %v", err)
	}
}
