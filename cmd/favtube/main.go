package main

import (
	"log"

	"github.com/MrSnakeDoc/favtube/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("❌ favtube failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("❌ favtube failed: %v", err)
	}
}
