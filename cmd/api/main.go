package main

import (
	"context"
	"os"
	"path"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/policy-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/policy-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/policy-dashboard-api/internal/api"
	"github.com/vfg2006/policy-dashboard-api/internal/config"
	"github.com/vfg2006/policy-dashboard-api/internal/scheduler"
	"github.com/vfg2006/policy-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/policy-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/policy-dashboard-api/pkg/log"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel := log.Configure(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	policyRepo := repository.NewPolicyRepository(pgConn)

	dashboardService, err := dashboarding.NewService(cfg, policyRepo)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar o painel de apólices")
	}

	authenticator, err := authenticating.NewService(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar a autenticação")
	}

	dashboardRefreshService := scheduler.NewDashboardRefreshService(dashboardService, cfg)
	if err := dashboardRefreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de recálculo do painel")
	} else {
		logrus.Info("Agendador de recálculo do painel iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		dashboardService,
		authenticator,
		dashboardRefreshService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger posiciona o processo no diretório do binário para achar o .env
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	log.Configure("info")
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
