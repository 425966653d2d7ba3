package main

import (
	"context"
	"log"

	"github.com/nestjs-store-microservices/auth-ms/internal/server"
	"github.com/nestjs-store-microservices/auth-ms/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
