package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/nstehr/vimy/vimy-tactics/agent"
	"github.com/nstehr/vimy/vimy-tactics/config"
	"github.com/nstehr/vimy/vimy-tactics/ipc"
	"github.com/nstehr/vimy/vimy-tactics/journal"
	"github.com/nstehr/vimy/vimy-tactics/pathfind"
	"github.com/nstehr/vimy/vimy-tactics/rules"
)

const banner = `
██╗   ██╗██╗███╗   ███╗██╗   ██╗
██║   ██║██║████╗ ████║╚██╗ ██╔╝
██║   ██║██║██╔████╔██║ ╚████╔╝
╚██╗ ██╔╝██║██║╚██╔╝██║  ╚██╔╝
 ╚████╔╝ ██║██║ ╚═╝ ██║   ██║
  ╚═══╝  ╚═╝╚═╝     ╚═╝   ╚═╝

Tactical Spawn & Objective Evaluation`

func main() {
	configPath := flag.String("config", "", "path to YAML config (defaults are used when empty)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	slog.Info("starting vimy-tactics",
		"doctrine", cfg.Rules.Doctrine.Name,
		"journal", cfg.Journal.Backend,
		"tickBudget", cfg.Rules.TickBudget,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := journal.NewStore(cfg.Journal.Backend, cfg.Journal.Path, cfg.Journal.MaxEntries)
	if err != nil {
		slog.Error("failed to open journal", "error", err)
		os.Exit(1)
	}
	if err := store.Init(ctx); err != nil {
		slog.Error("failed to init journal", "error", err)
		os.Exit(1)
	}
	defer journal.CloseIfSupported(store)

	socketPath := cfg.SocketPath

	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(socketPath); err != nil {
		slog.Error("failed to clean up socket", "path", socketPath, "error", err)
		os.Exit(1)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		slog.Error("failed to listen on socket", "path", socketPath, "error", err)
		os.Exit(1)
	}
	defer listener.Close()
	defer os.Remove(socketPath)

	slog.Info("listening on domain socket", "path", socketPath)

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return
				default:
					slog.Error("failed to accept connection", "error", err)
					continue
				}
			}
			slog.Info("new connection accepted")
			go handleConn(ctx, conn, cfg, store)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
}

// handleConn gives each mod connection its own engine: claims and spawn
// cooldowns belong to one player.
func handleConn(ctx context.Context, conn net.Conn, cfg config.Config, store journal.Store) {
	engine, err := rules.NewEngine(
		rules.CompileDoctrine(cfg.Rules.Doctrine),
		pathfind.New(cfg.Pathfinder.MaxExpansions),
		rules.WithJournal(store),
		rules.WithTickBudget(cfg.Rules.TickBudget),
	)
	if err != nil {
		slog.Error("failed to build rule engine", "error", err)
		conn.Close()
		return
	}

	c := ipc.NewConnection(conn, nil)
	a := agent.New(c, engine)
	c.RegisterHandler(ipc.TypeHello, a.HandleHello)
	c.RegisterHandler(ipc.TypeGameState, a.HandleGameState)
	c.ReadLoop(ctx)
}
