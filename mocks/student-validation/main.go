package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort      = "8001"
	defaultLatencyMs = "50"
)

type ValidateRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Registration string `json:"registration"`
}

type ValidateResponse struct {
	Eligible  bool   `json:"eligible"`
	Reason    string `json:"reason"`
	CheckedAt string `json:"checked_at"`
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
	http.HandleFunc("/validate", handleValidate)

	log.Printf("🎓 Mock Student Validation API starting on port %s", port)
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
		"service": "student-validation",
		"version": "1.0.0",
	})
}

// outageEmails make the mock answer 503 so callers can exercise the
// default-accept path.
var outageEmails = map[string]bool{
	"outage@aluno.ufpe.br": true,
}

func handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" {
		sendError(w, "email is required", http.StatusBadRequest)
		return
	}

	time.Sleep(time.Duration(latencyMs) * time.Millisecond)

	if outageEmails[strings.ToLower(req.Email)] {
		sendError(w, "Validation backend unavailable", http.StatusServiceUnavailable)
		return
	}

	response := evaluate(req)
	log.Printf("✅ Validated %s: eligible=%t", req.Email, response.Eligible)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// evaluate accepts institutional emails: any address containing "@aluno"
// or ending in ".edu.br".
func evaluate(req ValidateRequest) ValidateResponse {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	response := ValidateResponse{CheckedAt: time.Now().UTC().Format(time.RFC3339)}
	switch {
	case strings.Contains(email, "@aluno"):
		response.Eligible = true
		response.Reason = "student email domain"
	case strings.HasSuffix(email, ".edu.br"):
		response.Eligible = true
		response.Reason = "academic institution domain"
	default:
		response.Reason = "email is not institutional"
	}
	return response
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
