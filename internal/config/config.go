package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	SessionSecret       string
	DatabaseURL         string
	RedisURL            string
	FrontendURLEndsWith string
	DevPassword         string
	AllowCrossSiteDev   bool
	HealthAdminKey      string

	BaseURL        string // public site; magic links are BaseURL + "/rsvp/" + token
	CommercialName string // sender name on outbound email

	EmailProvider    string // brevo | sendgrid | log
	SendinblueAPIKey string // SENDINBLUE_API_KEY (Brevo)
	SendGridAPIKey   string
	MailFrom         string

	SMSProvider        string // twilio | log
	TwilioAccountSID   string
	TwilioAuthToken    string
	TwilioFrom         string
	TwilioWhatsAppFrom string

	WhatsAppProvider string // twilio | whatsmeow | log
	WhatsAppDataDir  string

	DispatchConcurrency int
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("DISPATCH_CONCURRENCY", 4)

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL_DEV")
	if env == "production" {
		dbURL = viper.GetString("DATABASE_URL_PROD")
	} else if env == "test" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}

	concurrency := viper.GetInt("DISPATCH_CONCURRENCY")
	if concurrency < 1 {
		concurrency = 1
	}

	return &Config{
		Env:                 env,
		Port:                port,
		SessionSecret:       viper.GetString("SESSION_SECRET"),
		DatabaseURL:         dbURL,
		RedisURL:            viper.GetString("REDIS_URL"),
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         viper.GetString("DEV_PASSWORD"),
		AllowCrossSiteDev:   strings.EqualFold(viper.GetString("ALLOW_CROSS_SITE_DEV"), "true"),
		HealthAdminKey:      viper.GetString("HEALTH_ADMIN_KEY"),
		BaseURL:             baseURL(viper.GetString("BASE_URL")),
		CommercialName:      orDefault(viper.GetString("COMMERCIAL_NAME"), "Nupcial"),
		EmailProvider:       provider(viper.GetString("EMAIL_PROVIDER")),
		SendinblueAPIKey:    viper.GetString("SENDINBLUE_API_KEY"),
		SendGridAPIKey:      viper.GetString("SENDGRID_API_KEY"),
		MailFrom:            viper.GetString("MAIL_FROM"),
		SMSProvider:         provider(viper.GetString("SMS_PROVIDER")),
		TwilioAccountSID:    viper.GetString("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:     viper.GetString("TWILIO_AUTH_TOKEN"),
		TwilioFrom:          viper.GetString("TWILIO_FROM"),
		TwilioWhatsAppFrom:  viper.GetString("TWILIO_WHATSAPP_FROM"),
		WhatsAppProvider:    provider(viper.GetString("WHATSAPP_PROVIDER")),
		WhatsAppDataDir:     orDefault(viper.GetString("WHATSAPP_DATA_DIR"), "data"),
		DispatchConcurrency: concurrency,
	}, nil
}

func baseURL(s string) string {
	s = strings.TrimRight(strings.TrimSpace(s), "/")
	if s == "" {
		return "http://localhost:3000"
	}
	return s
}

func provider(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "log"
	}
	return s
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
