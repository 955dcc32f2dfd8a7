package main

import (
	"log"
	"os"

	"github.com/alicebob/miniredis/v2"

	"leadbot/internal/app"
)

func main() {
	log.Println("Starting in-process Redis...")

	redisServer, err := miniredis.Run()
	if err != nil {
		log.Fatalf("Failed to start Redis: %v", err)
	}

	// Ensure Redis is stopped on exit
	defer func() {
		log.Println("Stopping Redis...")
		redisServer.Close()
	}()

	log.Printf("Redis started at %s", redisServer.Addr())

	// Set environment variables for the application
	os.Setenv("SESSION_BACKEND", "redis")
	os.Setenv("REDIS_ADDR", redisServer.Addr())
	os.Setenv("WEBHOOK_MODE", "false")

	if os.Getenv("LOG_LEVEL") == "" {
		os.Setenv("LOG_LEVEL", "debug")
	}

	// Set PORT for HTTP server if not already set
	if os.Getenv("PORT") == "" {
		os.Setenv("PORT", "8080")
	}

	if os.Getenv("BOT_TOKEN") == "" {
		log.Println("⚠️  BOT_TOKEN not set. Please set it in your .env file or environment.")
		log.Println("   The bot will fail to start without a valid token.")
	}

	if os.Getenv("ADMIN_CHAT_ID") == "" {
		log.Println("⚠️  ADMIN_CHAT_ID not set. Leads will only be logged.")
	}

	log.Println("Starting application with Redis session store...")

	application, err := app.New()
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}
