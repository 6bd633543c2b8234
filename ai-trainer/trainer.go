package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const startingElo = 1500

var (
	errJobRunning = errors.New("tuning already running")
	errNoJob      = errors.New("no tuning job running")
)

type trainer struct {
	client  *http.Client
	baseURL string
	apiAddr string
	dataDir string
	logger  *log.Logger
	rng     *rand.Rand

	boardSize          int
	maxMoves           int
	gameTimeout        time.Duration
	mutationStrength   float64
	populationSize     int
	eliteCount         int
	trainingOpenings   int
	validationOpenings int
	openingPlies       int
	eloK               float64
	validationPassRate float64
	publishChampion    bool

	statusMu sync.RWMutex
	status   trainerStatus
	jobMu    sync.Mutex
	job      *tuningJob
}

type tuningJob struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// trainerStatus is what the status API reports while a tuning job runs.
type trainerStatus struct {
	Running        bool              `json:"running"`
	Phase          string            `json:"phase"`
	Message        string            `json:"message"`
	UpdatedAt      string            `json:"updated_at"`
	Generation     int               `json:"generation"`
	GamesPlayed    int               `json:"games_played"`
	GamesTotal     int               `json:"games_total"`
	EtaSeconds     int               `json:"eta_seconds"`
	LastValidation float64           `json:"last_validation"`
	Fixture        *fixtureStatus    `json:"fixture,omitempty"`
	Standings      []trainerStanding `json:"standings,omitempty"`
	Champion       heuristicConfig   `json:"champion"`
	Challenger     heuristicConfig   `json:"challenger"`
}

type fixtureStatus struct {
	First   string `json:"first"`
	Second  string `json:"second"`
	Opening int    `json:"opening"`
}

type trainerStanding struct {
	ID         string          `json:"id"`
	Elo        float64         `json:"elo"`
	Heuristics heuristicConfig `json:"heuristics"`
}

// fixture is one head-to-head pairing of a round: population indexes and
// the opening they start from.
type fixture struct {
	first, second int
	opening       int
}

func (t *trainer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Route("/api/trainer", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "running": t.snapshot().Running})
		})
		r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, t.snapshot())
		})
		r.Post("/start", t.control(t.startTraining))
		r.Post("/stop", t.control(func() error { return t.stopTraining("api request") }))
	})
	return r
}

// control runs action and answers with the resulting status, or 409 when
// the job is not in a state that allows it.
func (t *trainer) control(action func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := action(); err != nil {
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, t.snapshot())
	}
}

func (t *trainer) startStatusAPI() func() {
	server := &http.Server{Addr: t.apiAddr, Handler: t.routes(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.logf("Status API stopped: %v", err)
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}
}

func (t *trainer) snapshot() trainerStatus {
	t.statusMu.RLock()
	defer t.statusMu.RUnlock()
	return t.status
}

func (t *trainer) report(edit func(*trainerStatus)) {
	t.statusMu.Lock()
	defer t.statusMu.Unlock()
	edit(&t.status)
	t.status.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
}

func (t *trainer) startTraining() error {
	t.jobMu.Lock()
	defer t.jobMu.Unlock()
	if t.job != nil {
		return errJobRunning
	}
	ctx, cancel := context.WithCancel(context.Background())
	job := &tuningJob{cancel: cancel, done: make(chan struct{})}
	t.job = job
	t.report(func(s *trainerStatus) {
		s.Running = true
		s.Phase = "starting"
		s.Message = "waiting for backend"
	})
	go t.runJob(ctx, job)
	return nil
}

func (t *trainer) runJob(ctx context.Context, job *tuningJob) {
	defer close(job.done)
	err := t.waitBackendReady(ctx)
	if err == nil {
		err = t.tune(ctx)
	}
	t.report(func(s *trainerStatus) {
		s.Running = false
		s.Fixture = nil
		if err != nil && !errors.Is(err, context.Canceled) {
			s.Phase = "error"
			s.Message = err.Error()
			return
		}
		s.Phase = "idle"
		s.Message = "service ready"
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		t.logf("Tuning failed: %v", err)
	}
	t.jobMu.Lock()
	t.job = nil
	t.jobMu.Unlock()
}

func (t *trainer) stopTraining(reason string) error {
	t.jobMu.Lock()
	job := t.job
	t.jobMu.Unlock()
	if job == nil {
		return errNoJob
	}
	t.logf("Stopping tuning: %s", reason)
	job.cancel()
	<-job.done
	return nil
}

// tune runs generations until ctx is cancelled. Each generation plays a
// round robin, validates the leader against the champion and breeds the
// next population.
func (t *trainer) tune(ctx context.Context) error {
	trainSuite := t.buildOpeningSuite(t.trainingOpenings, 41)
	holdout := t.buildOpeningSuite(t.validationOpenings, 911)
	champion := t.baseHeuristics()
	population := t.initializePopulation(champion)
	t.saveState(champion, population[1].Heuristics)
	t.report(func(s *trainerStatus) {
		s.Phase = "running"
		s.Message = "heuristic tuning"
		s.Champion = champion
		s.Challenger = population[1].Heuristics
	})

	for generation := 1; ; generation++ {
		if err := t.playRound(ctx, generation, population, trainSuite); err != nil {
			return err
		}
		sortContendersByElo(population)
		leader := population[0]
		if leader.Heuristics != champion {
			promoted, err := t.promote(ctx, generation, leader.Heuristics, champion, holdout)
			if err != nil {
				return err
			}
			if promoted {
				champion = leader.Heuristics
			}
		}
		t.saveState(champion, population[1].Heuristics)
		t.report(func(s *trainerStatus) {
			s.Fixture = nil
			s.EtaSeconds = 0
			s.Champion = champion
			s.Challenger = population[1].Heuristics
			s.Standings = toStandings(population, 8)
		})
		population = t.nextGenerationPopulation(champion, population)
	}
}

func roundRobin(size, openings int) []fixture {
	var fixtures []fixture
	for first := 0; first < size; first++ {
		for second := first + 1; second < size; second++ {
			for opening := 0; opening < openings; opening++ {
				fixtures = append(fixtures, fixture{first: first, second: second, opening: opening})
			}
		}
	}
	return fixtures
}

// playRound plays every fixture of the generation and updates Elo in place.
func (t *trainer) playRound(ctx context.Context, generation int, population []contender, suite [][]openingMove) error {
	fixtures := roundRobin(len(population), len(suite))
	started := time.Now()
	t.report(func(s *trainerStatus) {
		s.Generation = generation
		s.GamesPlayed = 0
		s.GamesTotal = len(fixtures)
	})
	for played, fx := range fixtures {
		if err := ctx.Err(); err != nil {
			return err
		}
		a, b := &population[fx.first], &population[fx.second]
		t.report(func(s *trainerStatus) {
			s.Fixture = &fixtureStatus{First: a.ID, Second: b.ID, Opening: fx.opening}
		})
		score, stones, err := t.playHeadToHead(ctx, a.Heuristics, b.Heuristics, suite[fx.opening])
		if err != nil {
			return err
		}
		updateElo(a, b, score, t.eloK)
		done := played + 1
		perGame := time.Since(started) / time.Duration(done)
		t.report(func(s *trainerStatus) {
			s.GamesPlayed = done
			s.EtaSeconds = int((perGame * time.Duration(len(fixtures)-done)).Seconds())
		})
		if done == 1 || done%5 == 0 {
			t.logf("Gen %d fixture %d/%d %s vs %s score=%.1f stones=%d", generation, done, len(fixtures), a.ID, b.ID, score, stones)
		}
	}
	return nil
}

// promote reports whether candidate scores at least validationPassRate
// against champion on the held-out openings.
func (t *trainer) promote(ctx context.Context, generation int, candidate, champion heuristicConfig, holdout [][]openingMove) (bool, error) {
	t.report(func(s *trainerStatus) {
		s.Fixture = nil
		s.Message = "validating leader"
	})
	rate, err := t.runValidation(ctx, candidate, champion, holdout)
	if err != nil {
		return false, err
	}
	t.report(func(s *trainerStatus) {
		s.LastValidation = rate
		s.Message = "heuristic tuning"
	})
	if rate < t.validationPassRate {
		t.logf("Gen %d leader rejected (validation %.2f < %.2f)", generation, rate, t.validationPassRate)
		return false, nil
	}
	t.logf("Gen %d leader promoted (validation %.2f)", generation, rate)
	if t.publishChampion {
		if err := t.publishHeuristics(candidate); err != nil {
			t.logf("Publish champion failed: %v", err)
		}
	}
	return true, nil
}

func (t *trainer) saveState(champion, challenger heuristicConfig) {
	if err := t.persistHeuristicPair(champion, challenger); err != nil {
		t.logf("Persist heuristics failed: %v", err)
	}
}

func (t *trainer) initializePopulation(seed heuristicConfig) []contender {
	population := []contender{{ID: "champion", Heuristics: seed, Elo: startingElo}}
	for len(population) < t.populationSize {
		population = append(population, contender{
			ID:         fmt.Sprintf("g0-m%d", len(population)),
			Heuristics: t.mutateHeuristics(seed),
			Elo:        startingElo,
		})
	}
	return population
}

// nextGenerationPopulation starts from the champion, carries over the top
// eliteCount+1 contenders that differ from it and fills the rest with
// mutations of those parents. Ratings reset every generation.
func (t *trainer) nextGenerationPopulation(champion heuristicConfig, ranked []contender) []contender {
	parents := ranked[:min(len(ranked), t.eliteCount+1)]
	next := []contender{{ID: "champion", Heuristics: champion, Elo: startingElo}}
	for i, parent := range parents {
		if len(next) == t.populationSize {
			break
		}
		if parent.Heuristics == champion {
			continue
		}
		next = append(next, contender{ID: fmt.Sprintf("elite-%d", i), Heuristics: parent.Heuristics, Elo: startingElo})
	}
	for len(next) < t.populationSize {
		parent := parents[t.rng.Intn(len(parents))]
		next = append(next, contender{
			ID:         fmt.Sprintf("mut-%d", len(next)),
			Heuristics: t.mutateHeuristics(parent.Heuristics),
			Elo:        startingElo,
		})
	}
	return next
}

func (t *trainer) logf(format string, args ...any) {
	t.logger.Printf(format, args...)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
