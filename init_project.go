package differenzler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kataras/neffos"
	"github.com/kataras/neffos/gobwas"
	"github.com/kataras/neffos/gorilla"

	"differenzler/config"
	"differenzler/game"
	"differenzler/stats"
)

var (
	shortConnID = func(c *neffos.NSConn) string {
		id := c.Conn.ID()
		if index := strings.LastIndex(id, "-"); index >= 0 {
			id = id[index+1:]
		}
		if c.Conn.IsClosed() {
			return "closed:" + id
		}
		return id
	}

	spaceLog = func(log *slog.Logger, c *neffos.NSConn, msg neffos.Message) {
		if !log.Enabled(context.Background(), slog.LevelDebug) {
			return
		}
		event := msg.Event
		if event == "" {
			event = "-"
		}
		log.Debug("space event",
			slog.String("route", fmt.Sprintf("%s/%s/%s", msg.Namespace, event, shortConnID(c))),
			slog.Int("body", len(msg.Body)))
	}
)

// App the wired server side of one process.
type App struct {
	Server   *neffos.Server
	Registry *Registry
	Counter  *Counter
	Service  *SessionService
}

// Close abandons running sessions and closes every connection.
func (a *App) Close() {
	a.Registry.Close()
	a.Server.Close()
}

// InitProject must be called by main. pid bounds every session and the counter.
func InitProject(pid context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}

	codec := NewCodec(cfg.BinaryFrames)
	publisher := newConnPublisher(codec, log)
	counter := NewCounterService(pid)
	registry := NewRegistry(pid, publisher, counter, log)

	var recorder game.Recorder
	if cfg.StatsPath != "" {
		recorder = stats.NewCSVSink(cfg.StatsPath)
	}
	seats := NewSeatFactory(cfg, recorder, log)

	service := newSessionService(registry, seats, codec, counter, publisher, cfg.RemoteSeat, log)

	var upgrader neffos.Upgrader
	switch strings.ToLower(cfg.Upgrader) {
	case config.UpgraderGorilla:
		upgrader = gorilla.DefaultUpgrader
	default:
		upgrader = gobwas.DefaultUpgrader
	}

	server := neffos.New(upgrader, namespaces(newSpaceManager(service)))
	server.OnConnect = func(c *neffos.Conn) error {
		log.Debug("serverEvent", slog.String("event", "OnConnect"), slog.String("id", c.ID()))
		return nil
	}
	server.OnDisconnect = func(c *neffos.Conn) {
		log.Debug("serverEvent", slog.String("event", "OnDisconnect"), slog.String("id", c.ID()))
	}

	log.Debug("namespace ready",
		slog.String("namespace", game.SpaceName),
		slog.String("upgrader", cfg.Upgrader),
		slog.Bool("binary", codec.Binary()))

	return &App{Server: server, Registry: registry, Counter: counter, Service: service}, nil
}
