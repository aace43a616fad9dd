package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	postgresStorage "github.com/mozteach/teach-api/internal/adapters/database/postgres"
	"github.com/mozteach/teach-api/pkg/logger"
)

// App is the immutable application settings threaded into the
// controllers at construction time.
type App struct {
	Debug              bool
	ListenAddr         string
	BaseURL            string
	RateLimit          int
	MailFrom           string
	StaffEmails        []string
	PersonaOrigins     []string
	PersonaVerifierURL string
	Audience           string
	BootstrapUsername  string
	BootstrapEmail     string
}

type Config struct {
	Database   *gorm.DB
	SMTPDialer *gomail.Dialer
	App        App
}

func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}
}

func Get() *Config {
	initConfig()

	err := logger.Init(logger.Config{
		Debug:     viper.GetBool("settings.debug"),
		LogToFile: viper.GetBool("settings.log-to-file"),
		LogsDir:   viper.GetString("settings.logs-dir"),
	})
	if err != nil {
		panic(err)
	}

	var gormConfig *gorm.Config
	if viper.GetBool("settings.debug") {
		newLogger := gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				SlowThreshold: time.Second,
				LogLevel:      gormLogger.Info,
				Colorful:      true,
			},
		)
		gormConfig = &gorm.Config{
			Logger: newLogger,
		}
	} else {
		gormConfig = &gorm.Config{}
	}

	dsn := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%d sslmode=disable",
		viper.GetString("service.database.user"),
		viper.GetString("service.database.password"),
		viper.GetString("service.database.name"),
		viper.GetString("service.database.host"),
		viper.GetInt("service.database.port"),
	)

	database, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		logger.Log.Panicf("Failed to connect to the database: %v", err)
	} else {
		logger.Log.Info("Successfully connected to the database")
	}

	errMigrate := database.AutoMigrate(postgresStorage.Migrations...)
	if errMigrate != nil {
		logger.Log.Panicf("Failed to migrate database: %v", errMigrate)
	}

	dialer := gomail.NewDialer(
		viper.GetString("service.smtp.host"),
		viper.GetInt("service.smtp.port"),
		viper.GetString("service.smtp.user"),
		viper.GetString("service.smtp.password"),
	)

	app := App{
		Debug:              viper.GetBool("settings.debug"),
		ListenAddr:         viper.GetString("service.http.listen"),
		BaseURL:            viper.GetString("service.http.base-url"),
		RateLimit:          viper.GetInt("service.http.rate-limit"),
		MailFrom:           viper.GetString("service.smtp.from"),
		StaffEmails:        viper.GetStringSlice("settings.staff-emails"),
		PersonaOrigins:     viper.GetStringSlice("settings.persona.origins"),
		PersonaVerifierURL: viper.GetString("settings.persona.verifier-url"),
		Audience:           viper.GetString("settings.persona.audience"),
		BootstrapUsername:  viper.GetString("settings.bootstrap.username"),
		BootstrapEmail:     viper.GetString("settings.bootstrap.email"),
	}

	return &Config{
		Database:   database,
		SMTPDialer: dialer,
		App:        app,
	}
}
