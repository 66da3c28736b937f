package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"secadmin/internal/admin/config"
	"secadmin/internal/admin/model"
	"secadmin/internal/admin/repository"
	"secadmin/internal/admin/util"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// seedUser mirrors one entry of the operator-provided user list.
type seedUser struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

func main() {
	util.InitLogger()
	logger := util.GetLogger()

	file := flag.String("file", "users.json", "path to the JSON user list")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		logger.Error("Failed to read user list", "file", *file, "error", err)
		os.Exit(1)
	}

	var users []seedUser
	if err := json.Unmarshal(data, &users); err != nil {
		logger.Error("Failed to parse user list", "file", *file, "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(cfg.DBName)
	repo := repository.NewMongoRepository(db, cfg.PermissionsCollection, cfg.EstablishmentsCollection, cfg.UsersCollection)

	if err := repo.EnsureIndexes(ctx); err != nil {
		logger.Warn("Failed to ensure indexes", "error", err)
	}

	created := 0
	for _, u := range users {
		if u.Email == "" || u.Password == "" {
			logger.Warn("Skipping entry without email or password", "email", u.Email)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("Failed to hash password", "email", u.Email, "error", err)
			os.Exit(1)
		}

		user := &model.User{
			ID:        uuid.NewString(),
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
		}
		if err := repo.UpsertUser(ctx, user, string(hash)); err != nil {
			logger.Error("Failed to upsert user", "email", u.Email, "error", err)
			os.Exit(1)
		}
		created++
	}

	logger.Info("Seed finished", "users", created)
}
