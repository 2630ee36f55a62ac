package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/akoreshkov/bloghub-be/config"
	"github.com/akoreshkov/bloghub-be/db/mysqldb"
	"github.com/akoreshkov/bloghub-be/routes"
	"github.com/akoreshkov/bloghub-be/services"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration: ", err)
	}
	if cfg.Port == "" {
		log.Fatal("$PORT must be set")
	}

	database, err := mysqldb.GetDatabase(cfg)
	if err != nil {
		log.Fatal("Received err when attempting to connect to DB", err)
	}
	defer database.Close()

	if err := configureFirebaseCredentials(); err != nil {
		log.Fatal("an error occurred while configuring firebase credentials", err)
	}
	app, err := firebase.NewApp(context.Background(), nil)
	if err != nil {
		log.Fatalf("error initializing firebase: %v\n", err)
	}
	authClient, err := app.Auth(context.Background())
	if err != nil {
		log.Fatal("error initializing auth client", err)
	}
	uploadBucket, err := services.NewStorageBucket(context.Background(), app, cfg.BucketName)
	if err != nil {
		log.Fatal("An error occurred while connecting to the image uploads bucket", err)
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.FEOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	routes.AddPostRoutes(&r.RouterGroup, database, authClient, uploadBucket)
	routes.AddGroupRoutes(&r.RouterGroup, database)
	routes.AddUserRoutes(&r.RouterGroup, database, authClient)
	routes.AddHealthCheckRoutes(&r.RouterGroup)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Error when attempting to run web server", err)
	}
}

const (
	CredentialsPathEnvVar = "GOOGLE_APPLICATION_CREDENTIALS"
	CredentialsJsonEnvVar = "GOOGLE_APPLICATION_CREDENTIALS_JSON"
	TargetCredentialsFile = "./google-application-credentials.json"
)

func configureFirebaseCredentials() error {
	credentialsPath, hasCredentialsPath := os.LookupEnv(CredentialsPathEnvVar)
	if hasCredentialsPath {
		log.Printf("Credentials path detected in env. Expecting credentails to be at %v\n", credentialsPath)
		return nil
	}
	credentialsJson, hasCredentialsJson := os.LookupEnv(CredentialsJsonEnvVar)
	if hasCredentialsJson {
		log.Println("Credentials JSON string detected in env.")
		err := os.WriteFile(TargetCredentialsFile, []byte(credentialsJson), 400)
		if err != nil {
			return fmt.Errorf("error writing credentials to temp file, %w", err)
		}
		err = os.Setenv(CredentialsPathEnvVar, TargetCredentialsFile)
		if err != nil {
			return fmt.Errorf("error setting %v env var %w", CredentialsPathEnvVar, err)
		}
		return nil
	}
	return fmt.Errorf("must specify either %v (a path)"+
		" or %v (credentials as JSON string)", CredentialsPathEnvVar, CredentialsJsonEnvVar)
}
