package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"morna/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ChangeFeedPostgres = "postgres"
	ChangeFeedKafka    = "kafka"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	ChangeFeed          string
	ChangeFeedReconnect time.Duration
	KafkaHost           string
	KafkaConsumerGroup  string
	KafkaChangesTopic   string

	RealtimeDebounce       time.Duration
	RealtimeMaxWait        time.Duration
	RealtimeRetryInterval  time.Duration
	RealtimeResyncSchedule string
}

// LoadConfig reads envFile when it exists, then layers defaults, the optional
// file named by CONFIG_PATH and the process environment, the environment
// winning.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path := v.GetString("CONFIG_PATH"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	config := Config{
		HTTPPort:   v.GetString("HTTP_PORT"),
		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),
		DBSslMode:  v.GetString("DB_SSLMODE"),

		ChangeFeed:          v.GetString("CHANGE_FEED"),
		ChangeFeedReconnect: v.GetDuration("CHANGE_FEED_RECONNECT"),
		KafkaHost:           v.GetString("KAFKA_HOST"),
		KafkaConsumerGroup:  v.GetString("KAFKA_CONSUMER_GROUP"),
		KafkaChangesTopic:   v.GetString("KAFKA_CHANGES_TOPIC"),

		RealtimeDebounce:       v.GetDuration("REALTIME_DEBOUNCE"),
		RealtimeMaxWait:        v.GetDuration("REALTIME_MAX_WAIT"),
		RealtimeRetryInterval:  v.GetDuration("REALTIME_RETRY_INTERVAL"),
		RealtimeResyncSchedule: v.GetString("REALTIME_RESYNC_SCHEDULE"),
	}

	return config, config.Validate()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", "8082")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("CHANGE_FEED", ChangeFeedPostgres)
	v.SetDefault("CHANGE_FEED_RECONNECT", "2s")
	v.SetDefault("KAFKA_CONSUMER_GROUP", "morna-realtime")
	v.SetDefault("KAFKA_CHANGES_TOPIC", "entity.changes")
	v.SetDefault("REALTIME_DEBOUNCE", "120ms")
	v.SetDefault("REALTIME_MAX_WAIT", "1s")
	v.SetDefault("REALTIME_RETRY_INTERVAL", "2s")
	v.SetDefault("REALTIME_RESYNC_SCHEDULE", "*/30 * * * * *")
}

func (c Config) Validate() error {
	var problems []error

	if c.HTTPPort == "" {
		problems = append(problems, errs.NewValueIsRequiredError("HTTP_PORT"))
	}
	if c.DBHost == "" || c.DBName == "" || c.DBUser == "" {
		problems = append(problems, errs.NewValueIsRequiredError("DB_HOST, DB_NAME and DB_USER"))
	}

	switch c.ChangeFeed {
	case ChangeFeedPostgres:
	case ChangeFeedKafka:
		if c.KafkaHost == "" || c.KafkaChangesTopic == "" {
			problems = append(problems, errs.NewValueIsRequiredError("KAFKA_HOST and KAFKA_CHANGES_TOPIC"))
		}
	default:
		problems = append(problems, errs.NewValueIsInvalidError("CHANGE_FEED"))
	}

	if c.RealtimeDebounce <= 0 || c.RealtimeMaxWait < c.RealtimeDebounce || c.RealtimeRetryInterval <= 0 {
		problems = append(problems, errs.NewValueIsInvalidError("realtime timings"))
	}

	return errors.Join(problems...)
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
