package dto

const EventNotificationRequested = "notification_requested"

type KafkaMessage struct {
	EventType string      `json:"event_type"`
	EventID   string      `json:"event_id"`
	Data      interface{} `json:"data"`
}

type NotificationEvent struct {
	UserID  string `json:"user_id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
}
