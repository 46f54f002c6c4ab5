package config

import (
	"log"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/zllibrary/library-service/pkg/auth"
	"github.com/zllibrary/library-service/pkg/kafka"
	"github.com/zllibrary/library-service/pkg/logger"
	"github.com/zllibrary/library-service/pkg/postgres"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"LIBRARY_HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"LIBRARY_HTTP_PORT" default:"8060"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"10s"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE"`
}

type Lending struct {
	// MaxBorrowedBooks is the number of books a resident may hold at once.
	MaxBorrowedBooks int `yaml:"maxBorrowedBooks" envconfig:"LENDING_MAX_BORROWED_BOOKS" default:"2"`

	// DefaultLoanPeriod is used when a borrow request carries no due date.
	DefaultLoanPeriod time.Duration `yaml:"defaultLoanPeriod" envconfig:"LENDING_DEFAULT_LOAN_PERIOD" default:"336h"`

	ActiveResidentsWindowDays int `yaml:"activeResidentsWindowDays" envconfig:"LENDING_ACTIVE_RESIDENTS_WINDOW_DAYS" default:"30"`
}

type Config struct {
	Server   HTTPServer   `yaml:"server"`
	Database postgres.DB  `yaml:"db"`
	Kafka    kafka.Config `yaml:"kafka"`
	Auth     auth.Config  `yaml:"auth"`
	Lending  Lending      `yaml:"lending"`
	Log      logger.Log   `yaml:"log"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		if err = config.Auth.Validate(); err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = &config
	})

	return cfg
}
