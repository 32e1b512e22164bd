package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	appanalytics "github.com/jhoicas/pdv-planilha-api/internal/application/analytics"
	"github.com/jhoicas/pdv-planilha-api/internal/application/dto"
	"github.com/jhoicas/pdv-planilha-api/internal/application/usecase"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/normalize"
	"github.com/jhoicas/pdv-planilha-api/internal/domain/repository"
	"github.com/jhoicas/pdv-planilha-api/internal/infrastructure/cache"
	"github.com/jhoicas/pdv-planilha-api/internal/infrastructure/report"
	"github.com/jhoicas/pdv-planilha-api/internal/infrastructure/storage"
	"github.com/jhoicas/pdv-planilha-api/internal/infrastructure/xlsx"
	"github.com/jhoicas/pdv-planilha-api/pkg/config"
	"github.com/jhoicas/pdv-planilha-api/pkg/logger"
)

type ctxKey struct{}

// env dependencias abiertas por openEnv y compartidas por los comandos.
type env struct {
	cfg   *config.Config
	store repository.RowStore
	close func()
	loc   *time.Location
	log   *logger.Logger
}

func openEnv(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	store, closeFn, err := storage.Open(c.Context, cfg)
	if err != nil {
		return fmt.Errorf("abrir planilha: %w", err)
	}
	e := &env{
		cfg:   cfg,
		store: store,
		close: closeFn,
		loc:   normalize.LoadLocation(cfg.App.Timezone),
		log:   logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr}),
	}
	c.Context = context.WithValue(c.Context, ctxKey{}, e)
	return nil
}

func closeEnv(c *cli.Context) error {
	if e := envFrom(c); e != nil {
		e.close()
	}
	return nil
}

func envFrom(c *cli.Context) *env {
	e, _ := c.Context.Value(ctxKey{}).(*env)
	return e
}

func (e *env) dashboard() *appanalytics.DashboardUseCase {
	return appanalytics.NewDashboardUseCase(e.store, cache.NoopDashboardCache{}, report.NewExporter(e.cfg.App.Name), e.loc,
		appanalytics.WithLogger(e.log.Component("dashboard")))
}

func runDashboard(c *cli.Context) error {
	out, err := envFrom(c).dashboard().GetDashboard(c.Context, c.String("preset"), c.String("start"), c.String("end"))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func runExport(c *cli.Context) error {
	uc := envFrom(c).dashboard()
	format := strings.ToLower(c.String("format"))

	var (
		body []byte
		err  error
	)
	switch format {
	case "pdf":
		body, err = uc.ExportPDF(c.Context, c.String("preset"), c.String("start"), c.String("end"))
	case "xlsx":
		body, err = uc.ExportXLSX(c.Context, c.String("preset"), c.String("start"), c.String("end"))
	default:
		return fmt.Errorf("formato desconocido %q (pdf | xlsx)", format)
	}
	if err != nil {
		return err
	}

	out := c.String("out")
	if out == "" {
		out = "painel." + format
	}
	if err := os.WriteFile(out, body, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", out, err)
	}
	fmt.Fprintf(c.App.Writer, "%s (%d bytes)\n", out, len(body))
	return nil
}

func runAddUser(c *cli.Context) error {
	out, err := usecase.NewUserUseCase(envFrom(c).store).Create(c.Context, dto.CreateUserRequest{
		Usuario: c.String("usuario"),
		Senha:   c.String("senha"),
		Role:    c.String("role"),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "usuario %s creado (role %s)\n", out.Usuario, out.Role)
	return nil
}

func runHashPassword(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("uso: pdvctl hash-password <senha>")
	}
	hash, err := usecase.HashPassword(c.Args().First())
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, hash)
	return nil
}

func runInitXLSX(c *cli.Context) error {
	path := c.String("path")
	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return fmt.Errorf("%s ya existe (use --force para sobrescribir)", path)
	}
	if err := xlsx.Init(path); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "libro creado en %s\n", path)
	return nil
}
