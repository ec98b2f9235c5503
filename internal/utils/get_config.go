package utils

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// App
	AppPort string `yaml:"APP_PORT"`
	AppURL  string `yaml:"APP_URL"`
	IsProd  bool   `yaml:"IS_PROD"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`
	AdminEmail       string `yaml:"ADMIN_EMAIL"`

	// SMS (Twilio) configuration
	TwilioAccountSID string `yaml:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `yaml:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber string `yaml:"TWILIO_FROM_NUMBER"`
	AdminPhone       string `yaml:"ADMIN_PHONE"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Gemini API configuration
	GeminiAPIKey string `yaml:"GEMINI_API_KEY"`
	GeminiModel  string `yaml:"GEMINI_MODEL"`

	// Google OAuth and Maps
	GoogleClientID   string `yaml:"GOOGLE_CLIENT_ID"`
	GoogleMapsAPIKey string `yaml:"GOOGLE_MAPS_API_KEY"`
}

var config Config

// LoadConfig reads .env (if present) and config.yaml. Environment variables
// take precedence over file values in GetConfig.
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %s\n", err)
	}

	file, err := os.ReadFile("config.yaml")
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
	if value := os.Getenv(key); value != "" {
		return value
	}

	switch key {
	case "APP_PORT":
		return config.AppPort
	case "APP_URL":
		return config.AppURL
	case "IS_PROD":
		return getBoolString(config.IsProd)
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "JWT_SECRET":
		return config.JWTSecret
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "ADMIN_EMAIL":
		return config.AdminEmail
	case "TWILIO_ACCOUNT_SID":
		return config.TwilioAccountSID
	case "TWILIO_AUTH_TOKEN":
		return config.TwilioAuthToken
	case "TWILIO_FROM_NUMBER":
		return config.TwilioFromNumber
	case "ADMIN_PHONE":
		return config.AdminPhone
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "GEMINI_API_KEY":
		return config.GeminiAPIKey
	case "GEMINI_MODEL":
		return config.GeminiModel
	case "GOOGLE_CLIENT_ID":
		return config.GoogleClientID
	case "GOOGLE_MAPS_API_KEY":
		return config.GoogleMapsAPIKey
	default:
		return ""
	}
}
