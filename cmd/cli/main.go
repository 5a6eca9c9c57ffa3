package main

import (
	"log"
	"os"

	"github.com/minaorangina/spades/config"
	"github.com/minaorangina/spades/setup"
	"github.com/minaorangina/spades/store"
	"github.com/minaorangina/spades/terminal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err.Error())
	}

	session, err := store.NewSession(store.NewID(), setup.Opts{HandSize: cfg.HandSize})
	if err != nil {
		log.Fatal("Could not initialise a new session")
	}

	if err := terminal.Run(session, os.Stdin, os.Stdout); err != nil {
		log.Fatal(err.Error())
	}
}
