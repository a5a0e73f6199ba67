package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"
	"log"
	"net"
	"net/http"

	"github.com/golang/glog"

	"github.com/robotalks/fuel.go/pkg/bridge"
	"github.com/robotalks/fuel.go/pkg/env"
	fx "github.com/robotalks/fuel.go/pkg/framework"
)

var (
	listenAddr = ":8080"
	path       = "/fuel"
)

func init() {
	env.SetupFlags()
	flag.StringVar(&listenAddr, "listen", listenAddr, "Websocket listening address.")
	flag.StringVar(&path, "path", path, "Websocket endpoint path.")
}

type server struct {
	http.Server
	listener net.Listener
}

func (s *server) Name() string {
	return "websocket"
}

func (s *server) Run(ctx context.Context) error {
	return fx.RunWithContextCloser(ctx, &s.Server, func() error {
		err := s.Serve(s.listener)
		if err == http.ErrServerClosed {
			return ctx.Err()
		}
		return err
	})
}

func main() {
	flag.Parse()

	device := env.NewConfig().MustDial()
	defer device.Close()

	mux := http.NewServeMux()
	mux.Handle(path, bridge.New(device).Handler())
	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		log.Fatalln(err)
	}
	glog.Infof("bridging on ws://%s%s", ln.Addr(), path)

	srv := &server{Server: http.Server{Handler: mux}, listener: ln}
	if err := fx.NewRunner().HandleSignals().Go(srv).Wait(); err != nil {
		log.Fatalln(err)
	}
}
