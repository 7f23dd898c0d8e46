package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/marinsprosper/minha-plataforma/database"
	"github.com/marinsprosper/minha-plataforma/middleware"
	"github.com/marinsprosper/minha-plataforma/models"
	"github.com/marinsprosper/minha-plataforma/routes"
	"github.com/marinsprosper/minha-plataforma/utils"

	"github.com/joho/godotenv"
)

func main() {
	log := utils.Log

	// Load .env if present, without overwriting already-set variables.
	if envMap, err := godotenv.Read(); err == nil {
		for k, v := range envMap {
			if os.Getenv(k) == "" {
				os.Setenv(k, v)
			}
		}
	}

	for _, envVar := range []string{"JWT_SECRET"} {
		if os.Getenv(envVar) == "" {
			log.Fatalf("variável de ambiente obrigatória %s não definida", envVar)
		}
	}
	if utils.PlatformDepixAddress() == "" {
		log.Warn("PLATFORM_DEPIX_ADDRESS não configurado: depósitos e saques ficarão indisponíveis")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("falha ao conectar no banco: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Setting{},
		&models.Deposit{},
		&models.Withdrawal{},
	); err != nil {
		log.Fatalf("falha ao migrar o banco: %v", err)
	}

	if err := utils.EnsureUploadDir(); err != nil {
		log.Fatalf("falha ao criar diretório de uploads: %v", err)
	}

	router := routes.InitRouter()

	handler := middleware.RequestLogMiddleware(
		middleware.RequestIDMiddleware(
			middleware.MaxBodyMiddleware(
				middleware.RecoveryMiddleware(router),
			),
		),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("servidor escutando na porta %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("erro no servidor: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("encerrando servidor...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("encerramento forçado: %v", err)
	}
	log.Info("servidor encerrado")
}
