package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/hobbleabbas/bapu-gateway/internal/app"
	"github.com/hobbleabbas/bapu-gateway/internal/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	// Interactive fallback so the node password never has to live in a
	// flag or shell history.
	if cfg.NodePassword == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Print("Node RPC password: ")
		pw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			log.Printf("read password: %v", err)
			return
		}
		cfg.NodePassword = string(pw)
	}

	a, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	a.Run(ctx)
}
