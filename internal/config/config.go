package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	BackendURL  string `mapstructure:"BACKEND_URL"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	FrontendURL string `mapstructure:"FRONTEND_URL"`

	// Chat sync
	PollIntervalSeconds int `mapstructure:"POLL_INTERVAL_SECONDS"`
	ConversationsPage   int `mapstructure:"CONVERSATIONS_PER_PAGE"`
	MessagesPage        int `mapstructure:"MESSAGES_PER_PAGE"`
	SessionIdleMinutes  int `mapstructure:"SESSION_IDLE_MINUTES"`

	// Local persistence (to-do list only; chat state is in-memory)
	TodoDBPath string `mapstructure:"TODO_DB_PATH"`
}

var AppConfig *Config

func LoadConfig() {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8085")
	viper.SetDefault("BACKEND_URL", "http://localhost:8000/api")
	viper.SetDefault("POLL_INTERVAL_SECONDS", 7)
	viper.SetDefault("CONVERSATIONS_PER_PAGE", 20)
	viper.SetDefault("MESSAGES_PER_PAGE", 50)
	viper.SetDefault("SESSION_IDLE_MINUTES", 30)
	viper.SetDefault("TODO_DB_PATH", "todos.db")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}
}

// PollInterval returns the scheduler cadence as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// SessionIdle returns how long an idle chat session survives before its
// scheduler is torn down.
func (c *Config) SessionIdle() time.Duration {
	return time.Duration(c.SessionIdleMinutes) * time.Minute
}
