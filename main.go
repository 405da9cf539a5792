package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/joho/godotenv"

	"github.com/Emazov/myach-pro-tier-list-backend/controller"
	"github.com/Emazov/myach-pro-tier-list-backend/db"
	"github.com/Emazov/myach-pro-tier-list-backend/storage"
	"github.com/Emazov/myach-pro-tier-list-backend/telegram"
	"github.com/Emazov/myach-pro-tier-list-backend/web"
)

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}
	connString := os.Getenv("POSTGRES_CONN_STR")

	portNum := 3000 // 3000 is the default
	port := os.Getenv("PORT")
	if port != "" {
		portNum, err = strconv.Atoi(port)
		if err != nil {
			log.Fatalf("error parsing port number: %v", err)
		}
	}

	adminID, err := strconv.ParseInt(os.Getenv("TELEGRAM_ADMIN_ID"), 10, 64)
	if err != nil {
		log.Fatalf("error parsing TELEGRAM_ADMIN_ID: %v", err)
	}

	clock := clock.New()
	db, err := db.New(context.Background(), connString, clock)
	if err != nil {
		log.Fatalf("cannot connect to DB: %v", err)
	}

	storageClient, err := storage.New(
		os.Getenv("R2_ENDPOINT"),
		os.Getenv("R2_ACCESS_KEY"),
		os.Getenv("R2_SECRET_KEY"),
		os.Getenv("R2_BUCKET_NAME"),
	)
	if err != nil {
		log.Fatalf("error creating storage client: %v", err)
	}

	telegramClient, err := telegram.New(os.Getenv("TELEGRAM_BOT_TOKEN"))
	if err != nil {
		log.Fatalf("error creating telegram client: %v", err)
	}

	if webhookURL := os.Getenv("WEBHOOK_URL"); webhookURL != "" {
		if err := telegramClient.SetWebhook(webhookURL + "/api/telegram/webhook"); err != nil {
			log.Fatalf("error setting telegram webhook: %v", err)
		}
	}

	ctrl, err := controller.New(clock, db, storageClient, telegramClient,
		controller.AdminConfig{TelegramID: adminID})
	if err != nil {
		log.Fatalf("error creating a new controller: %v", err)
	}

	server, err := web.NewServer(portNum, ctrl)
	if err != nil {
		log.Fatalf("error creating new web server: %v", err)
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 10*time.Second); err != nil {
			log.Printf("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	log.Printf("server shutdown")
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
