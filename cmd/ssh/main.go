package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"go.uber.org/zap"

	"github.com/jvesely/arcade/internal/config"
	"github.com/jvesely/arcade/internal/draw"
	"github.com/jvesely/arcade/internal/game"
	"github.com/jvesely/arcade/internal/loop"
	"github.com/jvesely/arcade/internal/persist"
)

func main() {
	configPath := flag.String("config", "arcade.toml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Scores are optional for SSH play. Without a reachable database every
	// session runs on the no-op recorder.
	var db *persist.DB
	dbCtx, dbCancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err = persist.NewDB(dbCtx, cfg.Database, log)
	dbCancel()
	if err != nil {
		log.Warn("database unavailable, sessions will not be recorded", zap.Error(err))
		db = nil
	} else {
		defer db.Close()
	}

	srv := &sshServer{cfg: cfg, db: db, log: log}

	opts := []ssh.Option{
		wish.WithAddress(cfg.SSH.Addr),
		wish.WithMiddleware(
			srv.gameMiddleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// TCP_NODELAY keeps input latency down
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if cfg.SSH.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.SSH.HostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		log.Fatal("create ssh server", zap.Error(err))
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info("ssh server listening", zap.String("addr", cfg.SSH.Addr))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatal("ssh server", zap.Error(err))
		}
	}()

	<-done
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}

type sshServer struct {
	cfg *config.Config
	db  *persist.DB
	log *zap.Logger
}

// gameMiddleware runs one game instance per SSH session.
func (srv *sshServer) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		srv.log.Info("session started",
			zap.String("user", sess.User()),
			zap.String("term", pty.Term),
			zap.Int("width", pty.Window.Width),
			zap.Int("height", pty.Window.Height))

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		var recorder game.Recorder = game.NoopRecorder{}
		if srv.db != nil {
			recorder = persist.NewRecorder(srv.db, sess.User(), srv.log)
		}

		reader := bufio.NewReader(sess)
		opts := loop.Options{
			TermSizeFunc: sizeTracker.getSize,
			Recorder:     recorder,
			Seed:         srv.cfg.Game.Seed,
		}
		if err := loop.Run(reader, sess, opts); err != nil {
			srv.log.Warn("game error", zap.String("user", sess.User()), zap.Error(err))
		}

		srv.log.Info("session ended", zap.String("user", sess.User()))
		next(sess)
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

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
