// pdvctl herramientas de operación sobre la planilha: painel por consola,
// exportaciones, alta de usuarios y creación de un libro .xlsx vacío.
package main

import (
	"log"
	"os"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Printf("aviso: no se pudo leer .env: %v", err)
	}
	decimal.MarshalJSONWithoutQuotes = true

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "preset", Usage: "0 | 7 | 30 | 90 | all"},
		&cli.StringFlag{Name: "start", Usage: "fecha inicial (YYYY-MM-DD o DD/MM/YYYY)"},
		&cli.StringFlag{Name: "end", Usage: "fecha final (YYYY-MM-DD o DD/MM/YYYY)"},
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "pdvctl",
		Usage: "Operación de la planilha del PDV",
		Commands: []*cli.Command{
			{
				Name:   "dashboard",
				Usage:  "Imprime el painel en JSON",
				Flags:  filterFlags(),
				Before: openEnv,
				After:  closeEnv,
				Action: runDashboard,
			},
			{
				Name:  "export",
				Usage: "Exporta el painel a PDF o Excel",
				Flags: append(filterFlags(),
					&cli.StringFlag{Name: "format", Value: "pdf", Usage: "pdf | xlsx"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "archivo de salida (por defecto painel.<format>)"},
				),
				Before: openEnv,
				After:  closeEnv,
				Action: runExport,
			},
			{
				Name:  "add-user",
				Usage: "Crea un usuario en la hoja usuarios",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "usuario", Required: true},
					&cli.StringFlag{Name: "senha", Required: true, EnvVars: []string{"PDV_NEW_PASSWORD"}},
					&cli.StringFlag{Name: "role", Value: "user", Usage: "admin | user"},
				},
				Before: openEnv,
				After:  closeEnv,
				Action: runAddUser,
			},
			{
				Name:      "hash-password",
				Usage:     "Genera el hash bcrypt para pegar en la columna senha_hash",
				ArgsUsage: "<senha>",
				Action:    runHashPassword,
			},
			{
				Name:  "init-xlsx",
				Usage: "Crea un libro .xlsx con todas las hojas y sus encabezados",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "path", Value: "./data/planilha.xlsx", EnvVars: []string{"XLSX_PATH"}},
					&cli.BoolFlag{Name: "force", Usage: "sobrescribe el archivo si existe"},
				},
				Action: runInitXLSX,
			},
		},
	}
}
