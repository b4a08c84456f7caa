package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ericogr/pokebattle/internal/constants"
	"github.com/ericogr/pokebattle/internal/dex"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultAddress      = ":8080"
	defaultAfkMinutes   = 3
	defaultCheckSeconds = 60
	defaultTeamSize     = 3
	maxTeamSize         = 6
)

type rawConfig struct {
	Server *struct {
		Address string `json:"address"`
	} `json:"server"`
	Database *struct {
		Driver string `json:"driver"`
		DSN    string `json:"dsn"`
	} `json:"database"`
	Afk *struct {
		TimeoutMinutes       int `json:"timeout_minutes"`
		CheckIntervalSeconds int `json:"check_interval_seconds"`
	} `json:"afk"`
	// Optional endpoint notified with winner/loser of CHALLENGE battles.
	RecordsURL  string        `json:"records_url"`
	TeamSize    int           `json:"team_size"`
	SpeciesList []dex.Species `json:"species_list"`
	MoveList    []dex.Move    `json:"move_list"`
	AbilityList []dex.Ability `json:"ability_list"`
}

// LoadedConfig is the validated runtime configuration.
type LoadedConfig struct {
	ServerAddress    string
	DatabaseDriver   string
	DatabaseDSN      string
	AfkTimeout       time.Duration
	AfkCheckInterval time.Duration
	RecordsURL       string
	TeamSize         int
	Dex              *dex.Dex
}

// Default returns the configuration used when no file is present.
func Default() *LoadedConfig {
	return &LoadedConfig{
		ServerAddress:    defaultAddress,
		DatabaseDriver:   DriverSQLite,
		DatabaseDSN:      dsnFromEnv(constants.DefaultDBPath),
		AfkTimeout:       defaultAfkMinutes * time.Minute,
		AfkCheckInterval: defaultCheckSeconds * time.Second,
		TeamSize:         defaultTeamSize,
		Dex:              dex.Default(),
	}
}

// LoadConfig reads the configuration file at path. A missing file yields
// Default. Dex lists are optional but must be given together.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(b, path)
}

// Parse validates raw JSON configuration; source only labels errors.
func Parse(data []byte, source string) (*LoadedConfig, error) {
	var rc rawConfig
	if err := json.Unmarshal(data, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", source, err)
	}
	out := Default()

	if rc.Server != nil && rc.Server.Address != "" {
		out.ServerAddress = rc.Server.Address
	}
	if rc.Database != nil {
		switch d := strings.ToLower(strings.TrimSpace(rc.Database.Driver)); d {
		case "", DriverSQLite:
		case DriverPostgres:
			out.DatabaseDriver = DriverPostgres
		default:
			return nil, fmt.Errorf("config file %s: unsupported database.driver '%s'", source, rc.Database.Driver)
		}
		if rc.Database.DSN != "" {
			out.DatabaseDSN = dsnFromEnv(rc.Database.DSN)
		}
	}
	if out.DatabaseDriver == DriverPostgres && os.Getenv(constants.EnvDBPath) == "" && (rc.Database == nil || rc.Database.DSN == "") {
		return nil, fmt.Errorf("config file %s: database.dsn is required for postgres", source)
	}
	if rc.Afk != nil {
		if rc.Afk.TimeoutMinutes < 0 || rc.Afk.CheckIntervalSeconds < 0 {
			return nil, fmt.Errorf("config file %s: afk values must not be negative", source)
		}
		if rc.Afk.TimeoutMinutes > 0 {
			out.AfkTimeout = time.Duration(rc.Afk.TimeoutMinutes) * time.Minute
		}
		if rc.Afk.CheckIntervalSeconds > 0 {
			out.AfkCheckInterval = time.Duration(rc.Afk.CheckIntervalSeconds) * time.Second
		}
	}
	if rc.RecordsURL != "" {
		u, err := url.Parse(rc.RecordsURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("config file %s: records_url must be an absolute http(s) URL", source)
		}
		out.RecordsURL = rc.RecordsURL
	}
	if rc.TeamSize != 0 {
		if rc.TeamSize < 1 || rc.TeamSize > maxTeamSize {
			return nil, fmt.Errorf("config file %s: team_size must be between 1 and %d", source, maxTeamSize)
		}
		out.TeamSize = rc.TeamSize
	}

	if len(rc.SpeciesList) > 0 || len(rc.MoveList) > 0 || len(rc.AbilityList) > 0 {
		if len(rc.SpeciesList) == 0 || len(rc.MoveList) == 0 {
			return nil, fmt.Errorf("config file %s: species_list and move_list must be provided together", source)
		}
		d, err := dex.New(rc.SpeciesList, rc.MoveList, rc.AbilityList)
		if err != nil {
			return nil, fmt.Errorf("config file %s: %w", source, err)
		}
		out.Dex = d
	}
	if len(out.Dex.Names()) < out.TeamSize {
		return nil, fmt.Errorf("config file %s: species_list has fewer entries than team_size", source)
	}
	return out, nil
}

func dsnFromEnv(fallback string) string {
	if v := os.Getenv(constants.EnvDBPath); v != "" {
		return v
	}
	return fallback
}
