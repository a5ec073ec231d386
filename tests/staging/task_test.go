//go:build staging

package staging

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"
)

type taskResponse struct {
	ID     string `json:"id"`
	HeroID string `json:"hero_id"`
	Title  string `json:"title"`
}

type outcomeResponse struct {
	Message string `json:"message"`
	Result  struct {
		XPGained   int64 `json:"xp_gained"`
		GoldGained int64 `json:"gold_gained"`
		StreakDays int   `json:"streak_days"`
	} `json:"result"`
}

// TestTaskCompletionFlow creates a hero and a habit, completes the habit,
// and verifies the reward payload.
func TestTaskCompletionFlow(t *testing.T) {
	name := fmt.Sprintf("StagingTasker_%d", time.Now().UnixNano())
	resp, body := makeRequest(t, "POST", "/api/v1/heroes", map[string]interface{}{"name": name})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d. Body: %s", resp.StatusCode, string(body))
	}
	var h heroResponse
	if err := json.Unmarshal(body, &h); err != nil {
		t.Fatalf("Failed to unmarshal hero: %v", err)
	}
	defer makeRequest(t, "DELETE", "/api/v1/heroes/"+h.ID, nil)

	resp, body = makeRequest(t, "POST", "/api/v1/tasks", map[string]interface{}{
		"hero_id":    h.ID,
		"title":      "Staging morning run",
		"type":       "habit",
		"difficulty": "easy",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d. Body: %s", resp.StatusCode, string(body))
	}
	var task taskResponse
	if err := json.Unmarshal(body, &task); err != nil {
		t.Fatalf("Failed to unmarshal task: %v", err)
	}

	resp, body = makeRequest(t, "POST", "/api/v1/tasks/"+task.ID+"/complete", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var outcome outcomeResponse
	if err := json.Unmarshal(body, &outcome); err != nil {
		t.Fatalf("Failed to unmarshal outcome: %v", err)
	}
	if outcome.Result.XPGained <= 0 {
		t.Errorf("Expected positive XP gain, got %d", outcome.Result.XPGained)
	}
	if outcome.Result.StreakDays != 1 {
		t.Errorf("Expected streak of 1 after first completion, got %d", outcome.Result.StreakDays)
	}

	// Completing the habit again rewards XP but does not extend the streak
	resp, body = makeRequest(t, "POST", "/api/v1/tasks/"+task.ID+"/complete", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, &outcome); err != nil {
		t.Fatalf("Failed to unmarshal outcome: %v", err)
	}
	if outcome.Result.StreakDays != 1 {
		t.Errorf("Expected streak to stay at 1 on same-day repeat, got %d", outcome.Result.StreakDays)
	}
}
