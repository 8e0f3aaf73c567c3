// Herramienta de migraciones de esquema sobre golang-migrate.
// Soporta subir, bajar por pasos y forzar versión (limpiar estado dirty).
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/bodegapro/bodega-api/pkg/config"
	"github.com/bodegapro/bodega-api/pkg/logger"
)

func main() {
	var (
		action = flag.String("action", "up", "acción: up, down, force")
		steps  = flag.Int("steps", 1, "pasos para down")
		target = flag.Uint("target", 0, "versión destino para force")
		dir    = flag.String("dir", "migrations", "directorio de migraciones")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	m, err := migrate.New("file://"+*dir, migrateURL(cfg.DB.ConnectionString()))
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar migraciones")
	}
	defer m.Close()

	switch *action {
	case "up":
		log.Info().Msg("aplicando migraciones pendientes...")
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("migraciones up")
		}
		log.Info().Msg("migraciones al día")

	case "down":
		log.Info().Int("steps", *steps).Msg("revirtiendo migraciones...")
		if err := m.Steps(-*steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("migraciones down")
		}
		log.Info().Msg("migraciones revertidas")

	case "force":
		log.Warn().Uint("target", *target).Msg("forzando versión de migración (limpia estado dirty)")
		if err := m.Force(int(*target)); err != nil {
			log.Fatal().Err(err).Msg("forzar versión")
		}
		log.Info().Msg("versión forzada")

	default:
		fmt.Printf("Uso: %s -action=[up|down|force] [-steps=N] [-target=V] [-dir=migrations]\n", os.Args[0])
		os.Exit(1)
	}
}

// migrateURL cambia el esquema del DSN a pgx5 para el driver de golang-migrate.
func migrateURL(dsn string) string {
	if cut, ok := strings.CutPrefix(dsn, "postgresql://"); ok {
		return "pgx5://" + cut
	}
	if cut, ok := strings.CutPrefix(dsn, "postgres://"); ok {
		return "pgx5://" + cut
	}
	return dsn
}
