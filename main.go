package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/nemopss/fintrack/api"
	"github.com/nemopss/fintrack/config"
	"github.com/nemopss/fintrack/db"
	_ "github.com/nemopss/fintrack/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Fintrack API
// @version 1.0
// @description CRUD service for users and financial transactions.
// @BasePath /
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Println("Starting fintrack server...")

	// Проверяем при старте, что база доступна и схема создана
	storage, err := db.NewStorage(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialise storage: %v", err)
	}
	storage.Close()
	log.Printf("Storage ready at %s", cfg.DBPath)

	handler := api.NewHandler(cfg.DBPath)

	r := gin.Default()
	r.GET("/", handler.Index)
	r.POST("/users", handler.CreateUser)
	r.GET("/users", handler.GetUsers)
	r.GET("/user/:id", handler.GetUser)
	r.PUT("/users/:id", handler.UpdateUser)
	r.DELETE("/users/:id", handler.DeleteUser)
	r.POST("/transaction", handler.CreateTransaction)
	r.GET("/transactions", handler.GetTransactions)
	r.GET("/transaction/:id", handler.GetTransaction)
	r.PUT("/transaction/:id", handler.UpdateTransaction)
	r.DELETE("/transaction/:id", handler.DeleteTransaction)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()
	log.Printf("Listening on %s", srv.Addr)

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
