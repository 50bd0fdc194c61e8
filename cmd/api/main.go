// Command api serves the titer pipeline over HTTP.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"serovis/internal"
	"serovis/internal/config"
	"serovis/ui"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := internal.NewDefaultLogger()

	appServer := ui.NewApp(log)
	addr := ":" + cfg.Server.Port
	log.Info("listening on %s", addr)

	if err := http.ListenAndServe(addr, appServer.Handler()); err != nil {
		fmt.Fprintln(os.Stderr, "api:", err)
		os.Exit(1)
	}
}
