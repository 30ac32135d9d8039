package main

import (
	"log"

	"github.com/sashaweiss-signal/proxying/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
