package main

import (
	"log"

	"github.com/mozteach/teach-api/cmd/api"
	"github.com/mozteach/teach-api/internal/adapters/config"
)

func main() {
	cfg := config.Get()
	a, err := api.New(cfg)
	if err != nil {
		log.Panic(err)
	}

	a.Start()
}
