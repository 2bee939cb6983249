package event_test

import (
	"errors"
	"testing"
	"time"

	"wrench/event"
	"wrench/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	. "github.com/onsi/gomega"
)

func TestCreateEvent(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should return error when failed to persist event", func(t *testing.T) {
		testErr := errors.New("test error")
		event.EventPersistCreateFunc = func(record *event.EventRecord, tx *gorm.DB) error {
			return testErr
		}
		var tx = &gorm.DB{Value: 10000}
		ret, err := event.CreateEvent("WORK_ORDER", 1234, "MAQ-001", event.EventCategoryCreated,
			event.UpdatedProperties{{PropertyName: "Status", PropertyDesc: "Status",
				OldValue: "Pending", OldValueDesc: "Pending", NewValue: "Received", NewValueDesc: "Received"}},
			event.UpdatedRelations{{PropertyName: "Assignee", PropertyDesc: "Assignee",
				TargetType: "assignee", TargetTypeDesc: "Assignee",
				OldTargetId: "", OldTargetDesc: "", NewTargetId: "technician:99", NewTargetDesc: "Bob"}},
			&session.Identity{ID: 333, Name: "user333"},
			types.TimestampOfDate(2021, 1, 1, 12, 12, 12, 0, time.Local),
			tx,
		)
		Expect(ret).To(BeNil())
		Expect(err).To(Equal(testErr))
	})

	t.Run("should be able to create events", func(t *testing.T) {
		var ev event.EventRecord
		var db *gorm.DB
		event.EventPersistCreateFunc = func(record *event.EventRecord, tx *gorm.DB) error {
			ev = *record
			db = tx
			return nil
		}

		var tx = &gorm.DB{Value: 10000}
		ret, err := event.CreateEvent("WORK_ORDER", 1234, "MAQ-001", event.EventCategoryCreated,
			event.UpdatedProperties{{PropertyName: "Status", PropertyDesc: "Status",
				OldValue: "Pending", OldValueDesc: "Pending", NewValue: "Received", NewValueDesc: "Received"}},
			event.UpdatedRelations{{PropertyName: "Assignee", PropertyDesc: "Assignee",
				TargetType: "assignee", TargetTypeDesc: "Assignee",
				OldTargetId: "", OldTargetDesc: "", NewTargetId: "technician:99", NewTargetDesc: "Bob"}},
			&session.Identity{ID: 333, Name: "user333"},
			types.TimestampOfDate(2021, 1, 1, 12, 12, 12, 0, time.Local),
			tx,
		)
		Expect(err).To(BeNil())

		expectEvent := event.EventRecord{
			Event: event.Event{
				SourceType: "WORK_ORDER",
				SourceId:   1234,
				SourceDesc: "MAQ-001",

				EventCategory: event.EventCategoryCreated,
				UpdatedProperties: event.UpdatedProperties{{PropertyName: "Status", PropertyDesc: "Status",
					OldValue: "Pending", OldValueDesc: "Pending", NewValue: "Received", NewValueDesc: "Received"}},
				UpdatedRelations: event.UpdatedRelations{{PropertyName: "Assignee", PropertyDesc: "Assignee",
					TargetType: "assignee", TargetTypeDesc: "Assignee",
					OldTargetId: "", OldTargetDesc: "", NewTargetId: "technician:99", NewTargetDesc: "Bob"}},

				CreatorId:   333,
				CreatorName: "user333",
			},
			Timestamp: types.TimestampOfDate(2021, 1, 1, 12, 12, 12, 0, time.Local),
			Synced:    false,
		}

		Expect(*ret).To(Equal(expectEvent))
		Expect(ev).To(Equal(expectEvent))

		Expect(db).To(Equal(tx))
	})
}
