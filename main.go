package main

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IAMC-DH/my-site-template/internal/pubsub"
	"github.com/IAMC-DH/my-site-template/internal/site"
	"github.com/IAMC-DH/my-site-template/internal/store"
	"github.com/IAMC-DH/my-site-template/server"

	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"
)

var (
	version = "dev"
)

//go:embed templates/*.html
var templatesFiles embed.FS

//go:embed static/*
var staticFiles embed.FS

type envConfig struct {
	DatabaseURL   string `env:"DATABASE_URL" envDefault:"postgres://localhost:5432/site?sslmode=disable"`
	Port          string `env:"PORT" envDefault:"8080"`
	DataDir       string `env:"DATA_DIR" envDefault:"./data"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin"`
	EditMode      bool   `env:"EDIT_MODE"`
}

func main() {

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		panic(fmt.Errorf("failed to parse environment: %w", err))
	}

	tmpl, err := template.New("").ParseFS(templatesFiles, "templates/*.html")
	if err != nil {
		panic(fmt.Errorf("failed to parse templates: %w", err))
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Errorf("failed to hash admin password: %w", err))
	}

	bus := pubsub.NewBus()

	st, err := store.NewPostgres(ctx, cfg.DatabaseURL, cfg.DataDir, bus)
	if err != nil {
		panic(fmt.Errorf("failed to initialize content store: %w", err))
	}
	defer st.Close()
	st.SetEditMode(cfg.EditMode)

	footer := site.NewFooter(ctx, st, bus)
	defer footer.Close()

	quick := site.NewQuickActions(ctx, st, bus)
	defer quick.Close()

	srv := server.NewServer(version, cfg.Port, http.FS(staticFiles), tmpl.ExecuteTemplate, st, bus, footer, quick, passwordHash)

	go srv.Start()
	defer srv.Close()

	slog.Info("Started server", slog.String("listen_addr", ":"+cfg.Port))
	si := make(chan os.Signal, 1)
	signal.Notify(si, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-si
	slog.Info("Shutting down server")
}
