package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"digi-agency/microservices/graphics-service/logging"
	"digi-agency/microservices/graphics-service/models"

	"github.com/sony/gobreaker"
)

// CompletionNotifier prima događaj "task completed". Proslava (zvuk, animacija)
// je briga prezentacionog sloja koji konzumira ovaj događaj - poslovna logika
// samo emituje notifikaciju.
type CompletionNotifier interface {
	TaskCompleted(task models.Task, session models.SessionContext)
}

// HTTPNotifier šalje događaje notifications servisu preko circuit breaker-a.
type HTTPNotifier struct {
	serviceURL string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

func NewHTTPNotifier(serviceURL string, breaker *gobreaker.CircuitBreaker) *HTTPNotifier {
	return &HTTPNotifier{
		serviceURL: serviceURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		breaker:    breaker,
	}
}

// TaskCompleted - best effort: pad notifikacije se loguje i nikad ne ruši
// promenu statusa koja ju je izazvala.
func (n *HTTPNotifier) TaskCompleted(task models.Task, session models.SessionContext) {
	payload := map[string]string{
		"event":      "task-completed",
		"taskId":     task.ID.Hex(),
		"taskName":   task.TaskName,
		"clientName": task.ClientName,
		"assignedTo": task.AssignedTo,
		"username":   session.Name,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		logging.Logger.Errorf("Event ID: NOTIFY_MARSHAL_FAILED, Description: Failed to marshal task-completed event: %v", err)
		return
	}

	_, err = n.breaker.Execute(func() (interface{}, error) {
		resp, err := n.httpClient.Post(n.serviceURL+"/api/notifications/events", "application/json", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
			return nil, fmt.Errorf("notifications service returned status %d", resp.StatusCode)
		}
		return nil, nil
	})
	if err != nil {
		logging.Logger.Warnf("Event ID: NOTIFY_SEND_FAILED, Description: Failed to deliver task-completed event for task %s: %v", task.ID.Hex(), err)
		return
	}

	logging.Logger.Infof("Event ID: NOTIFY_SENT, Description: task-completed event delivered for task %s.", task.ID.Hex())
}
