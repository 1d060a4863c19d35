// Package config holds the tuning knobs read from the environment. A .env
// file in the working directory is loaded first when present.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Configuration variables. These aren't user facing but useful for tuning the
// details of engine performance.
var (
	MaxOpenConns = getEnvInt("MAX_OPEN_CONNS", 20)
	MaxIdleConns = getEnvInt("MAX_IDLE_CONNS", 20)
	PopRate      = rate.Limit(getEnvInt("POP_RPS", 40))
	PopBurstRate = getEnvInt("POP_BURST", 10)

	// InputPollInterval is how often a worker drains queued player inputs.
	InputPollInterval = getEnvDuration("INPUT_POLL_MS", 20)
	// FramePollInterval is how often a websocket looks for new frames.
	FramePollInterval = getEnvDuration("FRAME_POLL_MS", 20)
	// IdleTimeout ends a session that has been paused this long.
	IdleTimeout = getEnvDuration("IDLE_TIMEOUT_MS", 10*60*1000)
	// FrameListLimit caps how many frames a single list call returns.
	FrameListLimit = getEnvInt("FRAME_LIST_LIMIT", 1000)
)

// Load reads a .env file into the process environment and refreshes the
// variables above. Missing files are not an error.
func Load(files ...string) {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("unable to load .env")
	}
	MaxOpenConns = getEnvInt("MAX_OPEN_CONNS", MaxOpenConns)
	MaxIdleConns = getEnvInt("MAX_IDLE_CONNS", MaxIdleConns)
	PopRate = rate.Limit(getEnvInt("POP_RPS", int(PopRate)))
	PopBurstRate = getEnvInt("POP_BURST", PopBurstRate)
	InputPollInterval = getEnvDuration("INPUT_POLL_MS", int(InputPollInterval/time.Millisecond))
	FramePollInterval = getEnvDuration("FRAME_POLL_MS", int(FramePollInterval/time.Millisecond))
	IdleTimeout = getEnvDuration("IDLE_TIMEOUT_MS", int(IdleTimeout/time.Millisecond))
	FrameListLimit = getEnvInt("FRAME_LIST_LIMIT", FrameListLimit)
}

func getEnvInt(varName string, defaults int) int {
	val := os.Getenv(varName)
	if val == "" {
		return defaults
	}
	intVal, err := strconv.ParseInt(val, 10, 32)
	if err != nil {
		return defaults
	}
	return int(intVal)
}

func getEnvDuration(varName string, defaultMillis int) time.Duration {
	return time.Duration(getEnvInt(varName, defaultMillis)) * time.Millisecond
}
