package main

import (
	"net/http"
	"os"
	"time"
)

func main() {
	addr := "http://127.0.0.1:8080/healthz"
	if v := os.Getenv("POKEBATTLE_HEALTH_URL"); v != "" {
		addr = v
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(addr)
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
	os.Exit(0)
}
