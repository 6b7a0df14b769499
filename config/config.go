package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName   string
	Port          string
	JaegerAddress string
	StorageDriver string
	DataFile      string
	MongoURI      string
	EmailFrom     string
	SMTPHost      string
	SMTPPass      string
	SMTPUser      string
	SMTPPort      int
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		_ = fmt.Errorf("couldn't load config")
	}

	port := os.Getenv("PORT")
	if len(port) == 0 {
		port = "8082"
	}
	dataFile := os.Getenv("DATA_FILE")
	if len(dataFile) == 0 {
		dataFile = "reservations.json"
	}
	storageDriver := os.Getenv("STORAGE_DRIVER")
	if len(storageDriver) == 0 {
		storageDriver = "file"
	}
	smtpPort, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		smtpPort = 587
	}

	return &Config{
		ServiceName:   "hotel-service",
		Port:          port,
		JaegerAddress: os.Getenv("JAEGER_ADDRESS"),
		StorageDriver: storageDriver,
		DataFile:      dataFile,
		MongoURI:      os.Getenv("MONGO_DB_URI"),
		EmailFrom:     os.Getenv("EMAIL_FROM"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPort:      smtpPort,
	}
}
