// Script de carga local: cria a tabela full_query_polizas e insere as
// apólices de um arquivo JSON para rodar o painel sem o banco de produção.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/policy-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/policy-dashboard-api/internal/config"
	"github.com/vfg2006/policy-dashboard-api/internal/domain"
	"github.com/vfg2006/policy-dashboard-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	idLength    = 12
	policyTable = "full_query_polizas"
)

const createPoliciesTable = `CREATE TABLE IF NOT EXISTS full_query_polizas (
	id             TEXT PRIMARY KEY,
	created_at     TIMESTAMPTZ NOT NULL,
	"isAnualPlan"  BOOLEAN,
	ciudad         TEXT,
	lista_mascotas JSONB,
	share_data     JSONB
)`

func main() {
	fixtures := flag.String("fixtures", "fixtures/policies.json", "arquivo JSON com a lista de apólices")
	alliance := flag.String("alliance", "", "aliança gravada em share_data (padrão: DASHBOARD_ALLIANCE)")
	dryRun := flag.Bool("dry-run", false, "apenas valida e imprime as apólices, sem acessar o banco")
	truncate := flag.Bool("truncate", false, "remove as apólices existentes antes da carga")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	logrus.Info("Iniciando script de carga de apólices...")

	policies, err := loadPolicies(*fixtures)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao ler o arquivo de apólices")
	}
	logrus.WithField("policies", len(policies)).Info("Arquivo de apólices carregado")

	if *dryRun {
		fmt.Println(utils.PrettyJson(policies))
		return
	}

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar configuração")
	}
	if *alliance == "" {
		*alliance = cfg.Dashboard.Alliance
	}

	ctx := context.Background()
	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	startTime := time.Now()
	err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, createPoliciesTable); err != nil {
			return fmt.Errorf("erro ao criar tabela %s: %w", policyTable, err)
		}

		if *truncate {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+policyTable); err != nil {
				return fmt.Errorf("erro ao limpar tabela %s: %w", policyTable, err)
			}
		}

		return insertPolicies(ctx, tx, policies, *alliance)
	})
	if err != nil {
		logrus.WithError(err).Fatal("Carga de apólices abortada")
	}

	logrus.WithFields(logrus.Fields{
		"policies": len(policies),
		"alliance": *alliance,
		"duration": time.Since(startTime).String(),
	}).Info("Carga de apólices concluída")
}

func loadPolicies(path string) ([]domain.Policy, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var policies []domain.Policy
	if err := json.Unmarshal(raw, &policies); err != nil {
		return nil, fmt.Errorf("arquivo %s inválido: %w", path, err)
	}

	return policies, nil
}

func insertPolicies(ctx context.Context, exec postgres.Queryer, policies []domain.Policy, alliance string) error {
	for i, policy := range policies {
		id, err := utils.GenerateID(idLength)
		if err != nil {
			return err
		}

		query, args, err := buildInsertPolicy(id, policy, alliance)
		if err != nil {
			return fmt.Errorf("apólice %d: %w", i, err)
		}

		if _, err := exec.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("erro ao inserir apólice [%d/%d]: %w", i+1, len(policies), err)
		}

		if i > 0 && i%50 == 0 {
			logrus.Infof("Progresso: %d/%d apólices inseridas", i+1, len(policies))
		}
	}

	return nil
}

// buildInsertPolicy grava as mascotas no mesmo formato recebido: lista
// nativa ou string JSON
func buildInsertPolicy(id string, policy domain.Policy, alliance string) (string, []interface{}, error) {
	pets, err := json.Marshal(policy.Pets)
	if err != nil {
		return "", nil, err
	}

	shareData, err := json.Marshal(map[string]string{"aliance": alliance})
	if err != nil {
		return "", nil, err
	}

	var city interface{}
	if policy.City != "" {
		city = policy.City
	}

	return squirrel.
		Insert(policyTable).
		Columns("id", "created_at", `"isAnualPlan"`, "ciudad", "lista_mascotas", "share_data").
		Values(id, policy.CreatedAt, policy.IsAnnualPlan, city, string(pets), string(shareData)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}
