package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"event-bot/internal/bot"
	"event-bot/internal/config"
	"event-bot/internal/repository"
	"event-bot/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	codeRepo := repository.NewAuthCodeRepository(db)

	if len(cfg.AuthCodes) > 0 {
		if err := codeRepo.Seed(ctx, cfg.AuthCodes); err != nil {
			log.Fatalf("seed auth codes: %v", err)
		}
	}
	if count, err := codeRepo.Count(ctx); err != nil {
		log.Printf("count auth codes: %v", err)
	} else {
		log.Printf("[info] %d auth codes provisioned", count)
	}

	authSvc := service.NewAuthService(userRepo, codeRepo)
	menuSvc := service.NewMenuService()
	announceSvc := service.NewAnnounceService()

	telegramBot, err := bot.New(cfg.TelegramToken, authSvc, menuSvc, announceSvc)
	if err != nil {
		log.Fatalf("bot: %v", err)
	}

	scheduler := service.NewSchedulerService(time.Local)
	if cfg.AnnounceInterval > 0 {
		if _, err := scheduler.ScheduleInterval(cfg.AnnounceInterval, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := telegramBot.SendAgendaReminders(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("agenda reminders: %v", err)
			}
		}); err != nil {
			log.Fatalf("schedule reminders: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	log.Println("Event bot started.")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("bot stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}
