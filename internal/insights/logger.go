package insights

import (
	"log"
	"time"
)

func logRequest(model string, promptBytes int) {
	log.Printf("[gemini] POST generateContent model=%s prompt_bytes=%d", model, promptBytes)
}

func logResponse(model string, statusCode int, duration time.Duration) {
	log.Printf("[gemini] response model=%s status=%d duration=%dms",
		model, statusCode, duration.Milliseconds())
}

func logError(operation string, err error) {
	log.Printf("[gemini] %s error: %v", operation, err)
}
