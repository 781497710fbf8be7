package main

import (
	"crypto/sha256"
	"encoding/json"
	"log"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort      = "8002"
	defaultLatencyMs = "80"

	// averageSpeedKmh converts distance into an estimated bus duration.
	averageSpeedKmh = 70.0
)

type DistanceRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

type DistanceResponse struct {
	Origin               string  `json:"origin"`
	Destination          string  `json:"destination"`
	DistanceKm           float64 `json:"distance_km"`
	EstimatedDurationMin float64 `json:"estimated_duration_min"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

var latencyMs = getEnvInt("LATENCY_MS", defaultLatencyMs)

func main() {
	port := getEnv("PORT", defaultPort)

	http.HandleFunc("/health", handleHealth)
	http.HandleFunc("/distance", handleDistance)

	log.Printf("🗺️  Mock Geo API starting on port %s", port)
	log.Printf("⏱️  Simulated latency: %dms", latencyMs)

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatal(err)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "geo-api",
		"version": "1.0.0",
	})
}

// knownDistances holds road distances for common city pairs, keyed by the
// lowercased names joined with "|" in alphabetical order.
var knownDistances = map[string]float64{
	"caruaru|recife":                 130.2,
	"olinda|recife":                  7.4,
	"gravatá|recife":                 83.0,
	"jaboatão dos guararapes|recife": 18.5,
	"joão pessoa|recife":             120.0,
	"maceió|recife":                  257.0,
	"natal|recife":                   286.0,
}

// unreachableCities make the mock answer 503 so callers can exercise the
// degraded route path.
var unreachableCities = map[string]bool{
	"atlantis": true,
}

func handleDistance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req DistanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	origin := strings.ToLower(strings.TrimSpace(req.Origin))
	destination := strings.ToLower(strings.TrimSpace(req.Destination))
	if origin == "" || destination == "" {
		sendError(w, "origin and destination are required", http.StatusBadRequest)
		return
	}

	time.Sleep(time.Duration(latencyMs) * time.Millisecond)

	if unreachableCities[origin] || unreachableCities[destination] {
		sendError(w, "No route between cities", http.StatusServiceUnavailable)
		return
	}

	km := distance(origin, destination)
	response := DistanceResponse{
		Origin:               req.Origin,
		Destination:          req.Destination,
		DistanceKm:           km,
		EstimatedDurationMin: math.Round(km/averageSpeedKmh*60*10) / 10,
	}
	log.Printf("📍 %s -> %s: %.1f km", req.Origin, req.Destination, km)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// distance returns the known distance for the pair, or a deterministic
// hash-derived value between 10 and 600 km.
func distance(a, b string) float64 {
	if a == b {
		return 0
	}
	if b < a {
		a, b = b, a
	}
	key := a + "|" + b
	if km, ok := knownDistances[key]; ok {
		return km
	}
	sum := sha256.Sum256([]byte(key))
	n := int(sum[0])<<8 | int(sum[1])
	return 10 + float64(n%5900)/10
}

func sendError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(code),
		Message: message,
		Code:    code,
	})
	log.Printf("❌ Error response: %d - %s", code, message)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key, defaultValue string) int {
	value := getEnv(key, defaultValue)
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("⚠️  Invalid integer value for %s, using default: %s", key, defaultValue)
		intValue, _ = strconv.Atoi(defaultValue)
	}
	return intValue
}
