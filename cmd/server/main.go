// Package main runs the development task-board API server.
package main

import (
	"log"
	"net/http"
	"os"

	"taskboard/internal/server"
)

func main() {
	addr := os.Getenv("TASKBOARD_SERVER_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	secret := os.Getenv("TASKBOARD_SERVER_SECRET")
	if secret == "" {
		secret = "dev-only-secret"
	}

	s := server.New(secret)
	log.Printf("taskboard API listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, s.Router()))
}
