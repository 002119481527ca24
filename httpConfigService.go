package main

import (
	"log"
	"net/http"
	"time"

	"golang.org/x/net/context"
)

type httpConfigService struct {
	srv     *http.Server
	handler *apiHandler
}

func (h *httpConfigService) launch(handler *apiHandler, addr string) {
	h.handler = handler
	h.srv = &http.Server{Addr: addr, Handler: newRouter(handler)}
	srv := h.srv

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("starting config service http server on %s", addr)
		err := srv.ListenAndServe()
		if err != http.ErrServerClosed {
			log.Print(err)
		}
		log.Print("Exiting config service")
	}()
}

func (h *httpConfigService) stop() {
	if h.srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	h.srv.Shutdown(ctx)
}
