package main

import (
	"context"
	"log"

	"github.com/docvault/docvault/internal/server"
	"github.com/docvault/docvault/internal/server/config"
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
