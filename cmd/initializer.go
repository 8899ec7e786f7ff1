package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"wanderstay/internal/config"
	"wanderstay/internal/geo"
	"wanderstay/internal/handlers"
	"wanderstay/internal/repositories"
	"wanderstay/internal/services"
	"wanderstay/internal/session"
	"wanderstay/utils"
)

type application struct {
	errorLog       *log.Logger
	infoLog        *log.Logger
	sessions       *session.Manager
	userService    *services.UserService
	userHandler    *handlers.UserHandler
	listingHandler *handlers.ListingHandler
	reviewHandler  *handlers.ReviewHandler
	db             *sql.DB
}

func initializeApp(db *sql.DB, rdb *redis.Client, cfg config.Config, errorLog, infoLog *log.Logger) *application {
	// Repositories
	userRepo := repositories.UserRepository{DB: db}
	listingRepo := repositories.ListingRepository{DB: db}
	reviewRepo := repositories.ReviewRepository{DB: db}

	// External collaborators
	geocoder := geo.NewMapboxClient(&http.Client{Timeout: 10 * time.Second}, cfg.Mapbox.Token)
	images := utils.NewImageStorage(utils.StorageConfig{
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		Endpoint:  cfg.Storage.Endpoint,
	})
	sessions := session.NewManager(rdb, cfg.Session.Secret, cfg.SessionLifetime())

	// Services
	userService := &services.UserService{UserRepo: &userRepo}
	listingService := &services.ListingService{
		ListingRepo: &listingRepo,
		ReviewRepo:  &reviewRepo,
		Geocoder:    geocoder,
		Images:      images,
		ErrorLog:    errorLog,
	}
	reviewService := &services.ReviewService{
		ReviewRepo:  &reviewRepo,
		ListingRepo: &listingRepo,
	}

	// Handlers
	userHandler := &handlers.UserHandler{Service: userService, Sessions: sessions}
	listingHandler := &handlers.ListingHandler{Service: listingService, Sessions: sessions}
	reviewHandler := &handlers.ReviewHandler{Service: reviewService, Sessions: sessions}

	return &application{
		errorLog:       errorLog,
		infoLog:        infoLog,
		sessions:       sessions,
		userService:    userService,
		userHandler:    userHandler,
		listingHandler: listingHandler,
		reviewHandler:  reviewHandler,
		db:             db,
	}
}
