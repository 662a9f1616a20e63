package main

import (
	"fmt"
	"net/http"

	"github.com/fatali-fataliyev/lesson_board/api"
	"github.com/fatali-fataliyev/lesson_board/internal/board"
	"github.com/fatali-fataliyev/lesson_board/internal/config"
	"github.com/fatali-fataliyev/lesson_board/internal/storage"
	"github.com/fatali-fataliyev/lesson_board/logging"
	"github.com/rs/cors"
)

var lb board.Board // Global

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		return
	}

	if err := logging.Init(cfg.LogLevel, cfg.Env, cfg.LogToFile); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		return
	}

	logging.Logger.Info("application starting...")

	storageInstance := storage.NewInMemoryStorage()
	lb = board.NewBoard(storageInstance, cfg.SessionTTL, cfg.MaxUploadBytes)
	logging.Logger.Infof("using %s storage, sessions live %s", lb.StorageType, cfg.SessionTTL)

	corsConf := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", api.TRACE_HEADER},
		ExposedHeaders:   []string{api.TRACE_HEADER, "Content-Disposition"},
		AllowCredentials: true,
	})

	server := api.NewApi(&lb, cfg.MaxUploadBytes).Router()

	fmt.Println("Starting server on port: ", cfg.Port)
	handlerwithCors := corsConf.Handler(server)
	err = http.ListenAndServe(":"+cfg.Port, handlerwithCors) // Start the server
	if err != nil {
		logging.Logger.Errorf("failed to start server: %v", err)
		return
	}
}
