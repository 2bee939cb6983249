package notification

import (
	"os"
	"strconv"
	"time"

	"wrench/domain"
	"wrench/domain/order"
	"wrench/event"
	"wrench/persistence"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// WebhookConfig is read from WEBHOOK_URL and WEBHOOK_ENABLED. Delivery is
// best effort: a failed POST is logged and dropped, never retried, and
// never fails the transaction that produced the event.
type WebhookConfig struct {
	URL     string
	Enabled bool
}

var (
	restClient = resty.New().SetTimeout(10 * time.Second)

	Config = LoadWebhookConfigFromEnv()
)

func LoadWebhookConfigFromEnv() WebhookConfig {
	enabled, _ := strconv.ParseBool(os.Getenv("WEBHOOK_ENABLED"))
	url := os.Getenv("WEBHOOK_URL")
	return WebhookConfig{URL: url, Enabled: enabled && url != ""}
}

type WebhookPayload struct {
	EventType string `json:"eventType"`

	WorkOrderID string `json:"workOrderId"`
	OrderNumber string `json:"orderNumber"`
	Issue       string `json:"issue"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`

	AssetName    string `json:"assetName,omitempty"`
	AssigneeName string `json:"assigneeName,omitempty"`
}

var eventTypes = map[event.EventCategory]string{
	event.EventCategoryCreated:         "work_order_created",
	event.EventCategoryPropertyUpdated: "work_order_updated",
	event.EventCategoryRelationUpdated: "work_order_updated",
	event.EventCategoryReopened:        "work_order_reopened",
	event.EventCategoryCancelled:       "work_order_cancelled",
}

// WorkOrderWebhookHandler posts work order lifecycle events to the
// configured endpoint. Events of other source types are ignored.
func WorkOrderWebhookHandler(record *event.EventRecord) *event.EventHandleResult {
	if record == nil || record.SourceType != order.EventSourceTypeWorkOrder {
		return nil
	}
	if !Config.Enabled {
		return nil
	}

	eventType, found := eventTypes[record.EventCategory]
	if !found {
		return nil
	}

	payload, err := buildPayload(eventType, record)
	if err != nil {
		logrus.Warnln("failed to build webhook payload for work order", record.SourceId, err)
		return &event.EventHandleResult{Success: false, Message: err.Error(), HandlerIdentifier: "workOrderWebhook"}
	}

	resp, err := restClient.R().SetBody(payload).Post(Config.URL)
	if err != nil {
		logrus.Warnln("failed to deliver webhook for work order", record.SourceId, err)
		return &event.EventHandleResult{Success: false, Message: err.Error(), HandlerIdentifier: "workOrderWebhook"}
	}
	if resp.StatusCode() >= 400 {
		logrus.Warnln("webhook endpoint answered", resp.StatusCode(), "for work order", record.SourceId)
		return &event.EventHandleResult{Success: false, Message: resp.Status(), HandlerIdentifier: "workOrderWebhook"}
	}
	return &event.EventHandleResult{Success: true, HandlerIdentifier: "workOrderWebhook"}
}

func buildPayload(eventType string, record *event.EventRecord) (*WebhookPayload, error) {
	db := persistence.ActiveDataSourceManager.GormDB()

	workOrder := domain.WorkOrder{}
	if err := db.Where(&domain.WorkOrder{ID: record.SourceId}).First(&workOrder).Error; err != nil {
		return nil, err
	}

	payload := WebhookPayload{
		EventType: eventType,

		WorkOrderID: workOrder.ID.String(),
		OrderNumber: workOrder.OrderNumber,
		Issue:       workOrder.Issue,
		Priority:    string(workOrder.Priority),
		Status:      string(workOrder.Status),
	}

	// a cancellation notice reports the status the order was cancelled from
	if record.EventCategory == event.EventCategoryCancelled {
		for _, property := range record.UpdatedProperties {
			if property.PropertyName == "Status" && property.OldValue != "" {
				payload.Status = property.OldValue
			}
		}
	}

	asset := domain.Asset{}
	if err := db.Where(&domain.Asset{ID: workOrder.AssetID}).First(&asset).Error; err == nil {
		payload.AssetName = asset.Name
	}

	if workOrder.ThirdPartyAssigned() {
		thirdParty := domain.ThirdParty{}
		if err := db.Where(&domain.ThirdParty{ID: workOrder.ThirdPartyID}).First(&thirdParty).Error; err == nil {
			payload.AssigneeName = thirdParty.Name
		}
	} else if workOrder.Assigned() {
		technician := domain.Technician{}
		if err := db.Where(&domain.Technician{ID: workOrder.TechnicianID}).First(&technician).Error; err == nil {
			payload.AssigneeName = technician.Name
		}
	}

	return &payload, nil
}
