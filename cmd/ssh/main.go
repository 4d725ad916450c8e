package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/joho/godotenv"

	"github.com/tomz197/planetdefense/internal/config"
	"github.com/tomz197/planetdefense/internal/draw"
	"github.com/tomz197/planetdefense/internal/loop/client"
	"github.com/tomz197/planetdefense/internal/loop/server"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "ssh"})

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("reading .env", "err", err)
	}
	if lvl, err := log.ParseLevel(config.GetEnv("LOG_LEVEL", "info")); err == nil {
		logger.SetLevel(lvl)
	}

	cfg, err := config.Load(config.GetEnv("GAME_CONFIG", *configPath))
	if err != nil {
		logger.Fatal("loading config", "err", err)
	}

	host := config.GetEnv("SSH_HOST", cfg.SSH.Host)
	port := config.GetEnv("SSH_PORT", cfg.SSH.Port)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", cfg.SSH.HostKey)
	shutdownWait := config.GetEnvDuration("SHUTDOWN_WAIT", cfg.Client.ShutdownDisplay+5*time.Second)
	logger.Info("ssh config", "host", host, "port", port, "hostKey", hostKeyPath)

	// Scores and player count are shared; every session plays its own world.
	gameServer := server.NewServer(logger)

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware(gameServer, cfg, logger),
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.DebugLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("creating server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	// Optional landing page with the live scoreboard
	var web *http.Server
	if webPort := config.GetEnv("WEB_PORT", ""); webPort != "" {
		landing := server.LandingHandler(gameServer, server.LandingOptions{
			SSHHost: config.GetEnv("SSH_DISPLAY_HOST", "localhost"),
			SSHPort: port,
		})
		web = &http.Server{
			Addr:              net.JoinHostPort(config.GetEnv("WEB_HOST", "0.0.0.0"), webPort),
			Handler:           landing,
			ReadHeaderTimeout: 5 * time.Second,
		}
		logger.Info("starting web server", "addr", web.Addr)
		go func() {
			if err := web.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("web server error", "err", err)
			}
		}()
	}

	logger.Info("starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down", "players", gameServer.Players())

	// Notify players and wait for them to disconnect
	gameServer.Shutdown(shutdownWait)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if web != nil {
		_ = web.Shutdown(ctx)
	}
	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// gameMiddleware runs one game client per SSH session.
func gameMiddleware(gs server.GameServer, cfg *config.Config, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			logger.Info("new game session", "user", sess.User(), "term", pty.Term,
				"size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			c, err := client.NewClient(gs, bufio.NewReader(sess), sess, client.ClientOptions{
				TermSizeFunc: sizeTracker.getSize,
				Username:     sess.User(),
				Config:       cfg,
				Logger:       logger,
			})
			if err != nil {
				logger.Error("creating client", "user", sess.User(), "err", err)
				return
			}
			if err := c.Run(sess.Context()); err != nil {
				logger.Error("game error", "user", sess.User(), "err", err)
			}

			logger.Info("session ended", "user", sess.User())
			next(sess)
		}
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
