package main

import (
	"log"

	"github.com/linkminder/linkminder/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ linkminder failed to start: %v", err)
	}
}
