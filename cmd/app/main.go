/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chatserver/internal"
	"chatserver/internal/chat"
	"chatserver/internal/entity"
	"chatserver/internal/handler"
	"chatserver/internal/middleware"
	"chatserver/internal/nlog"
	"chatserver/internal/repository"
	"chatserver/internal/service"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	configPath := flag.String("config", "server.cfg", "path of the JSON configuration file")
	flag.Parse()

	cfg, err := internal.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not load the configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := nlog.NewServerLogger(cfg.LogFile, cfg.EnableLogging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open the log file: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	// TranslateError lets the repositories map unique violations to their taxonomy
	db, err := gorm.Open(sqlite.Open(cfg.DBName), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Logf("Could not open the database: %v", err)
		os.Exit(1)
	}
	if err := db.AutoMigrate(&entity.User{}, &entity.UserSecret{}, &entity.Message{}); err != nil {
		logger.Logf("Could not migrate the database: %v", err)
		os.Exit(1)
	}

	userRepo := repository.NewSQLiteUserRepository(db)
	messageRepo := repository.NewSQLiteMessageRepository(db)

	rooms := service.NewRoomRegistry(cfg.Rooms)
	authService := service.NewAuthService(userRepo, logger.Subsystem("auth"))
	userService := service.NewUserService(userRepo, logger.Subsystem("users"))
	messageService := service.NewMessageService(messageRepo, rooms, logger.Subsystem("messages"))

	hub := chat.NewHub(logger.Subsystem("hub"))
	go hub.Run()
	dispatcher := chat.NewDispatcher(hub, messageService, userService, logger.Subsystem("dispatcher"))

	cookieStore := sessions.NewCookieStore([]byte(cfg.SecretKey))
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(7 * 24 * time.Hour.Seconds()),
	}

	userHandler := handler.NewUserHandler(authService, cookieStore, logger.Subsystem("http"))
	roomHandler := handler.NewRoomHandler(rooms, userService, hub, logger.Subsystem("http"))
	wsHandler := handler.NewWSHandler(hub, dispatcher, logger.Subsystem("http"))

	r := mux.NewRouter()
	r.HandleFunc("/users", userHandler.Register).Methods("POST")
	r.HandleFunc("/users/login", userHandler.Login).Methods("POST")
	r.HandleFunc("/rooms", roomHandler.Rooms).Methods("GET")
	r.HandleFunc("/logout", roomHandler.Logout).Methods("DELETE")
	r.HandleFunc("/ws", middleware.SessionMiddleware(cookieStore, wsHandler.ServeWS)).Methods("GET")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPServerPort),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Logf("Listening on port %d", cfg.HTTPServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logf("HTTP server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Logf("Shutting off...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Logf("HTTP shutdown error: %v", err)
	}
	if err := hub.Shutdown(5 * time.Second); err != nil {
		logger.Logf("Hub shutdown error: %v", err)
	}
}
