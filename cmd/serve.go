package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hoteldesk/hoteldesk/config"
	"github.com/hoteldesk/hoteldesk/internal/controllers"
	"github.com/hoteldesk/hoteldesk/internal/logger"
	"github.com/hoteldesk/hoteldesk/internal/realtime"
	"github.com/hoteldesk/hoteldesk/internal/services"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the room API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			// The in-memory store starts empty on every run.
			if cfg.DBDriver == config.DriverMemory {
				seed = true
			}
			return serve(cfg, seed)
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "initialize rooms on startup if the store is empty")
	return cmd
}

func serve(cfg config.Config, seed bool) error {
	logFile, err := logger.Setup(cfg.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()

	roomRepo, closeDB, err := openRoomRepository(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	opts := controllers.RouterOptions{
		Health:         roomRepo.Ping,
		AllowedOrigins: cfg.AllowedOrigins,
	}

	var notifier services.RoomNotifier
	if cfg.RedisUrl != "" {
		client, err := realtime.CreateRedisClient(cfg.RedisUrl)
		if err != nil {
			log.Printf("Realtime room feed disabled: %v", err)
		} else {
			defer client.Close()
			notifier = realtime.NewRedisNotifier(client)
			opts.RoomFeed = realtime.NewRoomFeed(client)
		}
	}

	roomService := services.NewRoomService(roomRepo, notifier)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if seed {
		if _, err := roomService.InitRooms(ctx, cfg.RoomCount, false); err != nil && !errors.Is(err, services.ErrRoomsInitialized) {
			return err
		}
	}

	router := controllers.NewV1Router(roomService, opts)

	addr := ":" + cfg.Port
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening on %s", addr)
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
