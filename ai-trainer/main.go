package main

import (
	"context"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"
)

func main() {
	logger, closeLog, err := buildLogger(getenv("TRAINER_LOG_PATH", "/logs/AITrainer.log"))
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer closeLog()

	t := newTrainerFromEnv(logger)
	t.logf("Heuristic tuner started. backend=%s board=%d population=%d", t.baseURL, t.boardSize, t.populationSize)
	stopAPI := t.startStatusAPI()
	defer stopAPI()

	switch getenv("TRAINER_AUTOSTART", "") {
	case "1", "true", "yes":
		if err := t.startTraining(); err != nil {
			t.logf("Autostart failed: %v", err)
		}
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()
	<-sigCtx.Done()
	_ = t.stopTraining("shutdown")
	t.logf("Tuner stopping")
}

func newTrainerFromEnv(logger *log.Logger) *trainer {
	boardSize := getenvInt("TRAINER_BOARD_SIZE", 15)
	if boardSize < 5 {
		boardSize = 15
	}
	mutationStrength := getenvFloat("HEURISTIC_MUTATION_STRENGTH", 0.08)
	if mutationStrength <= 0 {
		mutationStrength = 0.08
	}
	populationSize := getenvInt("HEURISTIC_POPULATION_SIZE", 6)
	if populationSize < 4 {
		populationSize = 4
	}
	eliteCount := getenvInt("HEURISTIC_ELITE_COUNT", 2)
	if eliteCount >= populationSize {
		eliteCount = populationSize - 1
	}
	eloK := getenvFloat("HEURISTIC_ELO_K", 20)
	if eloK <= 0 {
		eloK = 20
	}
	validationPassRate := getenvFloat("HEURISTIC_VALIDATION_PASS_RATE", 0.55)
	if validationPassRate <= 0 || validationPassRate > 1 {
		validationPassRate = 0.55
	}
	seed := int64(getenvInt("TRAINER_SEED", 0))
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &trainer{
		client:             &http.Client{Timeout: 10 * time.Second},
		baseURL:            getenv("BACKEND_URL", "http://backend:8080"),
		apiAddr:            getenv("TRAINER_API_ADDR", ":8090"),
		dataDir:            getenv("TRAINER_DATA_DIR", "/logs"),
		logger:             logger,
		rng:                rand.New(rand.NewSource(seed)),
		boardSize:          boardSize,
		maxMoves:           getenvInt("HEURISTIC_MAX_MOVES", boardSize*boardSize),
		gameTimeout:        time.Duration(getenvInt("HEURISTIC_GAME_TIMEOUT_SEC", 60)) * time.Second,
		mutationStrength:   mutationStrength,
		populationSize:     populationSize,
		eliteCount:         eliteCount,
		trainingOpenings:   getenvInt("HEURISTIC_TRAINING_OPENINGS", 4),
		validationOpenings: getenvInt("HEURISTIC_VALIDATION_OPENINGS", 4),
		openingPlies:       getenvInt("HEURISTIC_OPENING_PLIES", 2),
		eloK:               eloK,
		validationPassRate: validationPassRate,
		publishChampion:    getenv("TRAINER_PUBLISH_CHAMPION", "false") == "true",
		status: trainerStatus{
			Phase:     "idle",
			Message:   "service ready",
			UpdatedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}
}

func buildLogger(path string) (*log.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.New(io.MultiWriter(os.Stdout, f), "[trainer] ", log.LstdFlags)
	return logger, func() { _ = f.Close() }, nil
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func getenvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
