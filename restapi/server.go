package restapi

import (
	"context"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/netutil"

	"github.com/binplot/binplot/config"
	"github.com/binplot/binplot/logging"
)

type Server struct {
	cfg        *config.ServerConfig
	httpServer *http.Server
}

func NewServer(cfg *config.ServerConfig, handler http.Handler) *Server {
	return &Server{
		cfg: cfg,
		httpServer: &http.Server{
			Addr:              cfg.GetAddress(),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Serve listens on the configured address and blocks until the server is shut
// down. At most max_conns connections are accepted at once.
func (s *Server) Serve() error {
	lis, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	logging.Logger.Infof("serving api on %s, max_conns=%d", s.httpServer.Addr, s.cfg.GetMaxConns())
	err = s.httpServer.Serve(netutil.LimitListener(lis, s.cfg.GetMaxConns()))
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
