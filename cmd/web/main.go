package main

import (
	"log"

	"github.com/minaorangina/spades/config"
	"github.com/minaorangina/spades/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err.Error())
	}

	s, err := server.NewServer(server.ServerOpts{Config: cfg})
	if err != nil {
		log.Fatal(err.Error())
	}

	log.Printf("Listening on %s...", cfg.Addr)
	log.Fatal(s.ListenAndServe())
}
