package utils

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	AppPort     string `yaml:"APP_PORT"`
	CORSOrigins string `yaml:"CORS_ORIGINS"`

	// Database configuration
	DBDriver   string `yaml:"DB_DRIVER"` // sqlite (default) or postgres
	DBPath     string `yaml:"DB_PATH"`
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	SeedDonations bool `yaml:"SEED_DONATIONS"`

	JWTSecret string `yaml:"JWT_SECRET"`

	// Mailing configuration
	AppURL           string `yaml:"APP_URL"`
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Recommendation service
	RecommenderBackend string `yaml:"RECOMMENDER_BACKEND"` // http (default) or ollama
	RecommenderURL     string `yaml:"RECOMMENDER_URL"`
	RecommenderTimeout string `yaml:"RECOMMENDER_TIMEOUT"`
	OllamaURL          string `yaml:"OLLAMA_URL"`
	OllamaModel        string `yaml:"OLLAMA_MODEL"`
}

var config Config

var defaults = map[string]string{
	"APP_PORT":            "8080",
	"CORS_ORIGINS":        "*",
	"DB_DRIVER":           "sqlite",
	"DB_PATH":             "feastforbeasts.db",
	"RECOMMENDER_BACKEND": "http",
	"RECOMMENDER_TIMEOUT": "20s",
	"OLLAMA_URL":          "http://localhost:11434",
	"OLLAMA_MODEL":        "llama3.1",
}

// LoadConfig reads .env (if present) and config.yaml. Environment variables win over the yaml file.
func LoadConfig() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Error reading .env file: %s\n", err)
	}

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}

	file, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	err = yaml.Unmarshal(file, &config)
	if err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}
}

func getBoolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func GetConfig(key string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	var v string
	switch key {
	case "APP_PORT":
		v = config.AppPort
	case "CORS_ORIGINS":
		v = config.CORSOrigins
	case "DB_DRIVER":
		v = config.DBDriver
	case "DB_PATH":
		v = config.DBPath
	case "DB_USER":
		v = config.DBUser
	case "DB_NAME":
		v = config.DBName
	case "DB_PASSWORD":
		v = config.DBPassword
	case "DB_PORT":
		v = config.DBPort
	case "DB_HOST":
		v = config.DBHost
	case "SEED_DONATIONS":
		v = getBoolString(config.SeedDonations)
	case "JWT_SECRET":
		v = config.JWTSecret
	case "APP_URL":
		v = config.AppURL
	case "SMTP_HOST":
		v = config.SMTPHost
	case "SMTP_PORT":
		v = config.SMTPPort
	case "SMTP_SENDER_NAME":
		v = config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		v = config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		v = config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		v = config.AWSS3Bucket
	case "AWS_S3_REGION":
		v = config.AWSS3Region
	case "AWS_ACCESS_KEY":
		v = config.AWSAccessKey
	case "AWS_SECRET_KEY":
		v = config.AWSSecretKey
	case "RECOMMENDER_BACKEND":
		v = config.RecommenderBackend
	case "RECOMMENDER_URL":
		v = config.RecommenderURL
	case "RECOMMENDER_TIMEOUT":
		v = config.RecommenderTimeout
	case "OLLAMA_URL":
		v = config.OllamaURL
	case "OLLAMA_MODEL":
		v = config.OllamaModel
	}

	if v == "" {
		return defaults[key]
	}
	return v
}
