package main

import (
	"flag"
	"net/http"

	"go.uber.org/zap"

	"github.com/arnokoehler/battleship-frontend/internal/devserver"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	srv := devserver.New(log)

	log.Info("devserver listening", zap.String("addr", *addr))
	if err := http.ListenAndServe(*addr, srv.Routes()); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
