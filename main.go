package main

import (
	"log"

	"github.com/Kurumilog/teletype-to-epub/cmd"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}
